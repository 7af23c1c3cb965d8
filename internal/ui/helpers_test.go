package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"Milk", 10, "Milk"},
		{"Groceries", 5, "Groc…"},
		{"Äpfel und Birnen", 6, "Äpfel…"},
		{"x", 0, ""},
		{"abc", 1, "…"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("/home/olive/.local/state/tote/tote.log", 15)
	if len([]rune(got)) > 15 {
		t.Fatalf("got %q (%d runes), want <=15", got, len([]rune(got)))
	}
	if got[len(got)-3:] != "log" {
		t.Fatalf("truncateMiddle dropped the file name: %q", got)
	}
}

func TestPadRightAndCapitalize(t *testing.T) {
	if got := padRight("INFO", 5); got != "INFO " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("ERROR", 3); got != "ERROR" {
		t.Fatalf("padRight longer = %q", got)
	}
	if got := capitalize("name cannot be empty"); got != "Name cannot be empty" {
		t.Fatalf("capitalize = %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Fatalf("capitalize empty = %q", got)
	}
}
