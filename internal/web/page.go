package web

const pageHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>linecalc</title>
  {{if .ShareDescription}}
  <meta name="description" content="{{.ShareDescription}}">
  <meta property="og:description" content="{{.ShareDescription}}">
  {{end}}
  <style>
    body { font-family: system-ui, sans-serif; margin: 0; padding: 24px; max-width: 960px; box-sizing: border-box; }
    * { box-sizing: border-box; }
    .err { color: #b00020; margin: 12px 0; padding: 10px; background: #ffebee; border-radius: 6px; }
    .card { border: 1px solid #e0e0e0; border-radius: 10px; padding: 16px; margin: 16px 0; background: #fafafa; }
    .mono { font-family: ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", "Courier New", monospace; }
    table { border-collapse: collapse; width: 100%; margin-top: 10px; }
    td { padding: 8px 10px; border-top: 1px solid #eee; vertical-align: top; }
    .k { width: 320px; color: #444; }
    .hint { color: #666; font-size: 0.9em; margin-top: 4px; }
    .clock { float: right; text-align: right; color: #444; font-size: 0.9em; }
    .clock svg { display: block; margin: 0 0 4px auto; }
    footer { margin-top: 40px; color: #666; font-size: 0.9em; text-align: center; }

    .form-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 0 32px; }
    @media (max-width: 640px) { .form-grid { grid-template-columns: 1fr; } }
    .form-section-title { font-size: 0.85em; font-weight: 600; text-transform: uppercase; letter-spacing: 0.04em; color: #555; margin-bottom: 12px; padding-bottom: 6px; border-bottom: 1px solid #e0e0e0; }
    .field { margin-bottom: 14px; }
    .field label { display: block; font-weight: 500; color: #333; margin-bottom: 4px; font-size: 0.95em; }
    .field input { padding: 8px 10px; font-size: 1em; border: 1px solid #ccc; border-radius: 6px; width: 100%; max-width: 140px; }
    .fields-row { display: flex; gap: 20px; flex-wrap: wrap; }
    .fields-row .field { flex: 1; min-width: 100px; }
    .form-actions { padding-top: 16px; border-top: 1px solid #e0e0e0; }
    button[type="submit"], a.reset { padding: 10px 20px; font-size: 1em; font-weight: 500; border-radius: 6px; text-decoration: none; }
    button[type="submit"] { background: #1976d2; color: #fff; border: none; cursor: pointer; }
    a.reset { color: #333; border: 1px solid #ccc; background: #f5f5f5; margin-left: 8px; }
  </style>
</head>
<body>
  <div class="clock">
    <svg width="48" height="48" viewBox="0 0 48 48" aria-hidden="true">
      <circle cx="24" cy="24" r="22" fill="#fff" stroke="#bbb" stroke-width="2"/>
      <line id="hand-hour" x1="24" y1="24" x2="24" y2="12" stroke="#333" stroke-width="3" stroke-linecap="round" transform="rotate({{printf "%.1f" .Hands.Hour}} 24 24)"/>
      <line id="hand-minute" x1="24" y1="24" x2="24" y2="6" stroke="#333" stroke-width="2" stroke-linecap="round" transform="rotate({{printf "%.1f" .Hands.Minute}} 24 24)"/>
      <line id="hand-second" x1="24" y1="26" x2="24" y2="5" stroke="#b00020" stroke-width="1" transform="rotate({{printf "%.1f" .Hands.Second}} 24 24)"/>
    </svg>
    <div class="mono">{{.Clock}}</div>
    <div>{{.ShiftName}}</div>
    <div class="hint">remaining {{.ShiftRemaining}}</div>
  </div>

  <form method="POST" action="/calc">
    <div class="form-grid">
      <div class="form-section">
        <div class="form-section-title">Observation</div>
        <div class="field">
          <label for="pieces">Pieces produced</label>
          <input id="pieces" name="pieces" type="number" min="1" step="1" value="{{.Pieces}}" placeholder="100" required>
        </div>
        <div class="fields-row">
          <div class="field">
            <label for="time_min">Time taken (min)</label>
            <input id="time_min" name="time_min" type="number" min="0" step="1" value="{{.TimeMin}}" placeholder="0">
          </div>
          <div class="field">
            <label for="time_sec">(sec)</label>
            <input id="time_sec" name="time_sec" type="number" min="0" step="1" value="{{.TimeSec}}" placeholder="0">
          </div>
        </div>
      </div>

      <div class="form-section">
        <div class="form-section-title">Downtime</div>
        <div class="fields-row">
          <div class="field">
            <label for="downtime_min">Duration (min)</label>
            <input id="downtime_min" name="downtime_min" type="number" min="0" step="1" value="{{.DowntimeMin}}" placeholder="0">
          </div>
          <div class="field">
            <label for="downtime_sec">(sec)</label>
            <input id="downtime_sec" name="downtime_sec" type="number" min="0" step="1" value="{{.DowntimeSec}}" placeholder="0">
          </div>
        </div>
        <div class="field">
          <label for="downtime_freq">Every N pieces</label>
          <input id="downtime_freq" name="downtime_freq" type="number" min="0" step="1" value="{{.DowntimeFreq}}" placeholder="optional">
          <div class="hint">Ignored unless both duration and frequency are set</div>
        </div>
      </div>
    </div>

    <div class="form-actions">
      <button type="submit">Calculate</button>
      <a class="reset" href="/reset">Reset</a>
    </div>
  </form>

  {{if .Error}}<div class="err">{{.Error}}</div>{{end}}

  {{with .Result}}
    <div class="card" id="results">
      <table>
        <tr><td class="k">Cycle Time</td><td class="mono">{{.CycleTime}}</td></tr>
        {{if .HasDowntime}}
        <tr><td class="k">Downtime per piece</td><td class="mono">{{.DowntimePerPiece}}</td></tr>
        <tr><td class="k">Effective Cycle Time</td><td class="mono">{{.EffectiveCycle}}</td></tr>
        {{end}}
        <tr><td class="k">Rate / min</td><td class="mono">{{.RatePerMinute}}</td></tr>
        <tr><td class="k">Rate / hr</td><td class="mono">{{.RatePerHour}}</td></tr>
        <tr><td class="k">Efficiency</td><td class="mono">{{.Efficiency}}</td></tr>
      </table>
    </div>

    {{$dt := .HasDowntime}}
    {{range .Shifts}}
      <div class="card output-card">
        <div><b>{{.Name}}</b></div>
        <table>
          <tr><td class="k">Projected output</td><td class="mono">{{.Projected}}</td></tr>
          <tr><td class="k">Target</td><td class="mono">{{.Target}}</td></tr>
          {{if $dt}}
          <tr><td class="k">Lost to downtime</td><td class="mono">{{.LostPieces}} pcs / {{.LostMinutes}} min</td></tr>
          {{end}}
        </table>
      </div>
    {{end}}
  {{end}}

  <footer>linecalc v{{.Version}}</footer>
</body>
</html>`
