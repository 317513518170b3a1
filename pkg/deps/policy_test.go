package deps

import "testing"

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		name, filter string
		want         bool
	}{
		{"TestUtils", "Test", true},
		{"XunitTest", "Test", true},
		{"Newtonsoft.Json", "Test", false},
		{"anything", "", false},
		{"", "", false},
		{"test", "Test", false},
		{"Test", "Test", true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.filter, func(t *testing.T) {
			if got := ShouldSkip(tt.name, tt.filter); got != tt.want {
				t.Errorf("ShouldSkip(%q, %q) = %v, want %v", tt.name, tt.filter, got, tt.want)
			}
		})
	}
}

func TestWithinDepth(t *testing.T) {
	tests := []struct {
		depth, max int
		want       bool
	}{
		{0, 0, true},
		{1, 0, false},
		{2, 3, true},
		{3, 3, true},
		{4, 3, false},
	}

	for _, tt := range tests {
		if got := WithinDepth(tt.depth, tt.max); got != tt.want {
			t.Errorf("WithinDepth(%d, %d) = %v, want %v", tt.depth, tt.max, got, tt.want)
		}
	}
}
