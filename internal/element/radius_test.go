package element

import "testing"

func TestVDWRadius(t *testing.T) {
	tests := []struct {
		symbol string
		want   float32
	}{
		{"O", 1.52},
		{"H", 1.20},
		{"C", 1.70},
		{"N", 1.55},
		{"CL", 1.75},
		{"cl", 1.75},
		{" o ", 1.52},
		{"Xx", DefaultRadius},
		{"", DefaultRadius},
	}

	for _, tt := range tests {
		if got := VDWRadius(tt.symbol); got != tt.want {
			t.Errorf("VDWRadius(%q) = %v, want %v", tt.symbol, got, tt.want)
		}
	}
}
