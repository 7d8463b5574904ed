package reports

import (
	"strings"
	"testing"
)

func TestFormatHours(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0:00"},
		{474, "7:54"},
		{-948, "-15:48"},
		{600, "10:00"},
	}
	for _, tc := range cases {
		if got := formatHours(tc.minutes); got != tc.want {
			t.Fatalf("formatHours(%d): expected %s, got %s", tc.minutes, tc.want, got)
		}
	}
}

func TestFormatHoursNegativeKeepsSignOnce(t *testing.T) {
	got := formatHours(-61)
	if got != "-1:01" || strings.Count(got, "-") != 1 {
		t.Fatalf("unexpected %s", got)
	}
}
