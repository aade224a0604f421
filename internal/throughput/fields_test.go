package throughput

import "testing"

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"42", 42},
		{"  7 ", 7},
		{"12pcs", 12},
		{"3.9", 3},
		{"-5", -5},
		{"+8", 8},
		{"abc", 0},
		{"-", 0},
		{"2147483647", 2147483647},
		{"2147483648", 2147483647},
		{"2147483649", 2147483647},
		{"99999999999", 2147483647},
		{"-99999999999", -2147483647},
	}
	for _, tc := range tests {
		if got := ParseInt(tc.in); got != tc.want {
			t.Errorf("ParseInt(%q): got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFields_Sample(t *testing.T) {
	f := Fields{Pieces: "100", TimeMin: "10", TimeSec: ""}
	s := f.Sample()
	if s.Pieces != 100 || s.ObservedSeconds != 600 {
		t.Errorf("sample: got %+v", s)
	}
	if f.Downtime() != nil {
		t.Error("downtime: expected nil for blank fields")
	}
}

func TestFields_Downtime(t *testing.T) {
	tests := []struct {
		name   string
		f      Fields
		active bool
		want   Downtime
	}{
		{"minutes and seconds", Fields{DowntimeMin: "1", DowntimeSec: "30", DowntimeFreq: "20"}, true, Downtime{90, 20}},
		{"seconds only", Fields{DowntimeSec: "45", DowntimeFreq: "5"}, true, Downtime{45, 5}},
		{"no frequency", Fields{DowntimeMin: "5"}, false, Downtime{}},
		{"no duration", Fields{DowntimeFreq: "10"}, false, Downtime{}},
		{"garbage frequency", Fields{DowntimeMin: "5", DowntimeFreq: "x"}, false, Downtime{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := tc.f.Downtime()
			if !tc.active {
				if d != nil {
					t.Fatalf("expected nil, got %+v", *d)
				}
				return
			}
			if d == nil {
				t.Fatal("expected downtime, got nil")
			}
			if *d != tc.want {
				t.Errorf("got %+v, want %+v", *d, tc.want)
			}
		})
	}
}

func TestFields_Empty(t *testing.T) {
	if !(Fields{}).Empty() {
		t.Error("zero Fields should be empty")
	}
	if !(Fields{Pieces: "  "}).Empty() {
		t.Error("whitespace should count as empty")
	}
	if (Fields{DowntimeFreq: "3"}).Empty() {
		t.Error("Fields with a value should not be empty")
	}
}
