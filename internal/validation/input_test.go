package validation

import "testing"

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"12345678", true},
		{"0", true},
		{"", false},
		{"carla", false},
		{"1234a", false},
		{"12 34", false},
		{"-1234", false},
	}
	for _, c := range cases {
		if got := IsNumeric(c.in); got != c.want {
			t.Errorf("IsNumeric(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-30")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != 1 || d.Day() != 30 {
		t.Errorf("unexpected date %v", d)
	}

	for _, bad := range []string{"", "30/01/2025", "2025-13-01", "hoy"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	if _, _, err := ParseDateRange("2025-01-30", "2025-02-02"); err != nil {
		t.Errorf("valid cross-month range rejected: %v", err)
	}
	if _, _, err := ParseDateRange("2025-02-02", "2025-01-30"); err != ErrInvalidRange {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if _, _, err := ParseDateRange("2025-01-01", "2025-12-31"); err != ErrRangeTooLarge {
		t.Errorf("expected ErrRangeTooLarge, got %v", err)
	}

	// El tope es un trimestre exacto: 92 días de diferencia pasan, 93 no.
	if _, _, err := ParseDateRange("2025-01-01", "2025-04-03"); err != nil {
		t.Errorf("92-day range rejected: %v", err)
	}
	if _, _, err := ParseDateRange("2025-01-01", "2025-04-04"); err != ErrRangeTooLarge {
		t.Errorf("expected ErrRangeTooLarge for 93-day range, got %v", err)
	}
}
