package util

import (
	"testing"
)

func TestPct2F64(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"9.87%", 9.87},
		{" -3.2% ", -3.2},
		{"12.5", 12.5},
		{"", 0},
		{"abc", 0},
		{"--", 0},
	}
	for _, c := range cases {
		if got := Pct2F64(c.in); got != c.want {
			t.Errorf("Pct2F64(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAmt2F64(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.5亿", 1.5},
		{"15000万", 1.5},
		{"-2.3亿", -2.3},
		{"3.75", 3.75},
		{"abc", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := Amt2F64(c.in); got != c.want {
			t.Errorf("Amt2F64(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAmt2F64ParsedFlag(t *testing.T) {
	if _, ok := amt2F64Ok("garbage亿"); ok {
		t.Error("expected parse failure flag for malformed amount")
	}
	if v, ok := amt2F64Ok("2亿"); !ok || v != 2 {
		t.Errorf("amt2F64Ok(2亿) = %v, %v", v, ok)
	}
	if _, ok := pct2F64Ok(""); ok {
		t.Error("expected parse failure flag for empty percentage")
	}
}
