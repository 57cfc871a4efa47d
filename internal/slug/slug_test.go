package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello, World!  Setup", "hello-world-setup"},
		{"VPN Setup", "vpn-setup"},
		{"Reset Password", "reset-password"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Multiple---hyphens", "multiple-hyphens"},
		{"UPPER lower 123", "upper-lower-123"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"unicode ünïcode žluť", "unicode-ncode-lu"},
		{"!!!", "untitled"},
		{"", "untitled"},
		{"---", "untitled"},
	}
	for _, c := range cases {
		if got := Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMakeIdempotent(t *testing.T) {
	for _, s := range []string{"vpn-setup", "a", "reset-password-2", "untitled"} {
		if got := Make(s); got != s {
			t.Errorf("Make(%q) = %q, want unchanged", s, got)
		}
	}
	// Arbitrary input stabilizes after one pass.
	once := Make("Some! Arbitrary -- Title 42")
	if twice := Make(once); twice != once {
		t.Errorf("Make not idempotent: %q -> %q", once, twice)
	}
}

func TestMakeTruncates(t *testing.T) {
	long := strings.Repeat("abcde ", 40)
	got := Make(long)
	if len(got) > 80 {
		t.Errorf("len = %d, want <= 80", len(got))
	}
	if strings.HasSuffix(got, "-") || strings.HasPrefix(got, "-") {
		t.Errorf("slug has dangling hyphen: %q", got)
	}
}
