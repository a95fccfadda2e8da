package color

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestHighlightYAML(t *testing.T) {
	src := []byte("name: a\ncount: 1\nself: &a1\n  ok: true\n")

	c := New()
	c.SetEnabled(false)
	if got := string(c.HighlightYAML(src)); got != string(src) {
		t.Errorf("expected input unchanged but got %q", got)
	}

	c.SetEnabled(true)
	got := string(c.HighlightYAML(src))
	if !strings.Contains(got, escape+"[") {
		t.Fatalf("expected ANSI escapes but got %q", got)
	}
	if !strings.Contains(got, format(color.FgHiCyan)+"name") {
		t.Errorf("map key is not colored: %q", got)
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := map[string]struct {
		env    string
		expect bool
	}{
		"1":     {env: "1", expect: true},
		"true":  {env: "true", expect: true},
		"0":     {env: "0", expect: false},
		"false": {env: "false", expect: false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(envSmartcloneColor, test.env)
			if got := New().IsEnabled(); got != test.expect {
				t.Errorf("expected %t but got %t", test.expect, got)
			}
		})
	}
}

func TestSetEnabled(t *testing.T) {
	t.Setenv(envSmartcloneColor, "true")
	c := New()
	c.SetEnabled(false)
	if got := c.Red().Sprint("x"); got != "x" {
		t.Errorf("expected plain text but got %q", got)
	}
	c.SetEnabled(true)
	if got := c.Green().Sprint("x"); got == "x" {
		t.Error("expected colored text")
	}
}
