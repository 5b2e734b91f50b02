package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.Time.Month() != time.March || d.Day() != 15 {
		t.Fatalf("got %s", d)
	}

	for _, bad := range []string{"", "2024-3-15", "15/03/2024", "2024-13-01"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseMonth(t *testing.T) {
	cases := []struct {
		in   string
		want Month
		ok   bool
	}{
		{"2024-03", Month{2024, time.March}, true},
		{"2024-03-20", Month{2024, time.March}, true},
		{"2024", Month{}, false},
		{"03-2024", Month{}, false},
	}
	for i, tc := range cases {
		got, err := ParseMonth(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("case %d (%q): err = %v", i, tc.in, err)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("case %d (%q): got %v, want %v", i, tc.in, got, tc.want)
		}
	}
}

func TestMonthKeyAndContains(t *testing.T) {
	m := Month{2024, time.March}
	if m.Key() != "2024-03-01" {
		t.Fatalf("key = %q", m.Key())
	}
	if m.String() != "2024-03" {
		t.Fatalf("string = %q", m.String())
	}
	if !m.Contains(NewDate(2024, time.March, 31)) {
		t.Fatal("march 31 should be contained")
	}
	if m.Contains(NewDate(2024, time.April, 1)) {
		t.Fatal("april 1 should not be contained")
	}
	if m.Next() != (Month{2024, time.April}) {
		t.Fatalf("next = %v", m.Next())
	}
	if (Month{2024, time.December}).Next() != (Month{2025, time.January}) {
		t.Fatal("december should roll into january")
	}
}
