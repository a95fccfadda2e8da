// Package color colors command output.
package color

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
)

const envSmartcloneColor = "SMARTCLONE_COLOR"

type Color = color.Color

// Config holds the colors of one command invocation.
type Config struct {
	enabled *bool // nil follows color.NoColor
	red     *Color
	green   *Color
	cyan    *Color
	colors  []*Color
}

// New returns a Config initialized from the SMARTCLONE_COLOR environment
// variable.
func New() *Config {
	c := &Config{
		red:   color.New(color.FgRed),
		green: color.New(color.FgGreen),
		cyan:  color.New(color.FgCyan),
	}
	c.colors = []*Color{c.red, c.green, c.cyan}

	if env := os.Getenv(envSmartcloneColor); env != "" {
		if enabled, err := strconv.ParseBool(env); err == nil {
			c.SetEnabled(enabled)
		}
	}
	return c
}

// IsEnabled reports whether output is colored.
func (c *Config) IsEnabled() bool {
	if c != nil && c.enabled != nil {
		return *c.enabled
	}
	return !color.NoColor
}

// SetEnabled overrides the environment.
func (c *Config) SetEnabled(enabled bool) {
	c.enabled = &enabled
	for _, col := range c.colors {
		if enabled {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
}

func (c *Config) Red() *Color   { return c.red }
func (c *Config) Green() *Color { return c.green }
func (c *Config) Cyan() *Color  { return c.cyan }

// HighlightYAML colors the tokens of a YAML document. It returns b as is
// when color is disabled.
func (c *Config) HighlightYAML(b []byte) []byte {
	if !c.IsEnabled() {
		return b
	}
	var p printer.Printer
	p.Bool = property(color.FgHiMagenta)
	p.Number = property(color.FgHiMagenta)
	p.MapKey = property(color.FgHiCyan)
	p.Anchor = property(color.FgHiYellow)
	p.Alias = property(color.FgHiYellow)
	p.String = property(color.FgHiGreen)
	p.Comment = property(color.FgHiBlack)
	return []byte(p.PrintTokens(lexer.Tokenize(string(b))))
}

func property(attr color.Attribute) func() *printer.Property {
	return func() *printer.Property {
		return &printer.Property{
			Prefix: format(attr),
			Suffix: format(color.Reset),
		}
	}
}

const escape = "\x1b"

func format(attr color.Attribute) string {
	return fmt.Sprintf("%s[%dm", escape, attr)
}
