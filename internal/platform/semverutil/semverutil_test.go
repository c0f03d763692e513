package semverutil

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2", "2.0.0"},
		{"2.5", "2.5.0"},
		{"2.5.1", "2.5.1"},
		{"1.0.0-beta.1", "1.0.0-beta.1"},
		{"0", "0.0.0"},
		{"10.20", "10.20.0"},
		{"abc", "abc"},
		{"1.x", "1.x"},
		{"1.2.3.4", "1.2.3.4"},
		{"", ""},
		{" 2.5 ", "2.5.0"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"2", "2.5", "2.5.1", "abc", "1.2.3.4", ""} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestNormalizeValid(t *testing.T) {
	got, err := NormalizeValid("1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.2.0" {
		t.Fatalf("got %q, want 1.2.0", got)
	}

	if _, err := NormalizeValid("abc"); err == nil {
		t.Fatalf("expected error for non-version input")
	} else if !strings.Contains(err.Error(), "abc") {
		t.Fatalf("error should carry the raw input, got %q", err.Error())
	}

	if _, err := NormalizeValid("1.2.3.4"); err == nil {
		t.Fatalf("expected error for four-component input")
	}
}
