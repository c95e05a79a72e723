package money

import (
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"10", 1000},
		{"10.5", 1050},
		{"10.50", 1050},
		{"10000.00", 1000000},
		{"  4000 ", 400000},
		{"0.01", 1},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", ".", ".5", "10.", "10.505", "-5", "+5", "1e3", "1,000", "abc", "10.5x"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Parse(%q): expected ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestParseRejectsOverflow(t *testing.T) {
	for _, in := range []string{
		"92233720368547758.08",
		"92233720368547758",
		"9223372036854775807",
		"99999999999999999999",
	} {
		got, err := Parse(in)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Parse(%q): expected ErrInvalidAmount, got %d, %v", in, got, err)
		}
	}

	// The largest representable amount still parses.
	got, err := Parse("92233720368547757.99")
	if err != nil {
		t.Fatalf("Parse max: %v", err)
	}
	if got != 9223372036854775799 {
		t.Fatalf("Parse max = %d", got)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(1050); got != "10.50" {
		t.Fatalf("Format(1050) = %q", got)
	}
	if got := Format(0); got != "0.00" {
		t.Fatalf("Format(0) = %q", got)
	}
	if got := Format(-250); got != "-2.50" {
		t.Fatalf("Format(-250) = %q", got)
	}
}
