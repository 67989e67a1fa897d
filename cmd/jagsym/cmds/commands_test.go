package cmds

import (
	"testing"
	"unicode/utf8"

	"github.com/42Bastian/jagsym/pkg/config"
)

func TestTruncate(t *testing.T) {
	defer func(old *config.Config) { conf = old }(conf)
	conf = &config.Config{MaxTypeNameLen: 8}

	for _, tc := range []struct{ in, want string }{
		{"", ""},
		{"int", "int"},
		{"uint8_t*", "uint8_t*"},
		{"unsigned long long", "unsigne…"},
		{"vecteur énorme", "vecteur…"},
		{"日本語の型名です", "日本…"},
	} {
		got := truncate(tc.in)
		if got != tc.want {
			t.Errorf("truncate(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q) produced invalid UTF-8: %q", tc.in, got)
		}
	}

	conf = &config.Config{}
	if got := truncate("unsigned long long"); got != "unsigned long long" {
		t.Errorf("unlimited width should not truncate, got %q", got)
	}
}
