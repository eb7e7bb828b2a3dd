package domain

import "testing"

func TestParseFilterMask(t *testing.T) {
	tests := []struct {
		in      string
		want    FilterMask
		wantErr bool
	}{
		{"", FilterMgmt, false},
		{"mgmt", FilterMgmt, false},
		{"MGMT, data", FilterMgmt | FilterData, false},
		{"all", FilterAll, false},
		{"mgmt,ctrl,data,misc", FilterAll, false},
		{",", FilterMgmt, false},
		{"beacon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilterMask(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilterMask(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFilterMask(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilterMask_String(t *testing.T) {
	if got := (FilterMgmt | FilterData).String(); got != "mgmt,data" {
		t.Errorf("String() = %q", got)
	}
	if got := FilterAll.String(); got != "all" {
		t.Errorf("String() = %q", got)
	}
	m, err := ParseFilterMask((FilterCtrl | FilterMisc).String())
	if err != nil || m != FilterCtrl|FilterMisc {
		t.Errorf("round trip = %v, %v", m, err)
	}
}
