package ui

import "testing"

func TestDays(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0 days"},
		{1, "1 day"},
		{12, "12 days"},
	}

	for _, tt := range tests {
		if got := Days(tt.n); got != tt.expected {
			t.Errorf("Days(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		value, peak, width int
		cells              int
	}{
		{0, 10, 20, 0},
		{10, 10, 20, 20},
		{5, 10, 20, 10},
		{1, 1000, 20, 1},
		{50, 10, 20, 20},
		{3, 0, 20, 0},
	}

	for _, tt := range tests {
		got := []rune(Bar(tt.value, tt.peak, tt.width))
		if len(got) != tt.cells {
			t.Errorf("Bar(%d, %d, %d) has %d cells, want %d", tt.value, tt.peak, tt.width, len(got), tt.cells)
		}
	}
}

func TestIconConstants(t *testing.T) {
	icons := []string{IconMap, IconCard, IconFire, IconSnow, IconWarn, IconError, IconOk, IconDot}
	for i, icon := range icons {
		if icon == "" {
			t.Errorf("Icon at index %d is empty", i)
		}
	}
}

func TestColorWanted(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if !ColorWanted(false) {
		t.Error("empty NO_COLOR should leave color on")
	}
	t.Setenv("NO_COLOR", "1")
	if ColorWanted(false) {
		t.Error("NO_COLOR=1 should disable color")
	}
	t.Setenv("NO_COLOR", "")
	if ColorWanted(true) {
		t.Error("--no-color should disable color")
	}
}
