package cli

import (
	"testing"
)

func TestParseAttrQuery(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantKey string
		wantVal any
		wantErr bool
	}{
		{"string value", "color=red", "color", "red", false},
		{"name lookup", "name=cup", "name", "cup", false},
		{"float value", "mass=0.3", "mass", 0.3, false},
		{"integer reads as number", "count=1", "count", 1.0, false},
		{"boolean value", "visible=true", "visible", true, false},
		{"value with spaces", "position=top left", "position", "top left", false},
		{"missing equals", "color", "", nil, true},
		{"empty key", "=red", "", nil, true},
		{"empty value", "color=", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, val, err := parseAttrQuery(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseAttrQuery(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if key != tt.wantKey {
				t.Errorf("key = %q, want %q", key, tt.wantKey)
			}
			if val != tt.wantVal {
				t.Errorf("value = %v (%T), want %v (%T)", val, val, tt.wantVal, tt.wantVal)
			}
		})
	}
}
