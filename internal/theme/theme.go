// Package theme holds the built-in color schemes and locales that the
// renderer and the init wizard offer. The catalog is compiled into the
// binary so a generated site never depends on files next to it.
package theme

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Default catalog entries used when the config does not pick any.
const (
	DefaultScheme = "paper"
	DefaultLocale = "en"
)

// Scheme is one named set of colors and typography. Every field maps
// onto a --daily-* CSS custom property.
type Scheme struct {
	Background string `yaml:"background"`
	Surface    string `yaml:"surface"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
	Border     string `yaml:"border"`
	Accent     string `yaml:"accent"`
	AccentSoft string `yaml:"accent_soft"`
	FontFamily string `yaml:"font_family"`
}

// Locale carries the display strings for one language: month names,
// weekday headers (Sunday first), and the fixed labels around the
// calendar and article panel.
type Locale struct {
	Tag         string   `yaml:"tag"`
	Months      []string `yaml:"months"`
	Weekdays    []string `yaml:"weekdays"`
	TitleFormat string   `yaml:"title_format"`
	EmptyState  string   `yaml:"empty_state"`
	PrevMonth   string   `yaml:"prev_month"`
	NextMonth   string   `yaml:"next_month"`
	Search      string   `yaml:"search"`
}

// Catalog is the full set of schemes and locales shipped with the binary.
type Catalog struct {
	Schemes map[string]Scheme `yaml:"schemes"`
	Locales map[string]Locale `yaml:"locales"`
}

// Load parses the embedded catalog and validates every locale.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(themesYAML, &c); err != nil {
		return nil, fmt.Errorf("parsing theme catalog: %w", err)
	}
	for name, loc := range c.Locales {
		if err := loc.validate(); err != nil {
			return nil, fmt.Errorf("locale %q: %w", name, err)
		}
	}
	return &c, nil
}

// Scheme looks up a scheme by name.
func (c *Catalog) Scheme(name string) (Scheme, bool) {
	s, ok := c.Schemes[name]
	return s, ok
}

// Locale looks up a locale by name.
func (c *Catalog) Locale(name string) (Locale, bool) {
	l, ok := c.Locales[name]
	return l, ok
}

// SchemeNames returns all scheme names in sorted order.
func (c *Catalog) SchemeNames() []string {
	names := make([]string, 0, len(c.Schemes))
	for name := range c.Schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LocaleNames returns all locale names in sorted order.
func (c *Catalog) LocaleNames() []string {
	names := make([]string, 0, len(c.Locales))
	for name := range c.Locales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a copy of the scheme with the given overrides applied.
// Unknown style keys are rejected so typos in the config surface early.
func (s Scheme) With(overrides map[string]string) (Scheme, error) {
	for key, value := range overrides {
		switch key {
		case "background":
			s.Background = value
		case "surface":
			s.Surface = value
		case "text":
			s.Text = value
		case "muted":
			s.Muted = value
		case "border":
			s.Border = value
		case "accent":
			s.Accent = value
		case "accent_soft":
			s.AccentSoft = value
		case "font_family":
			s.FontFamily = value
		default:
			return Scheme{}, fmt.Errorf("unknown style key %q", key)
		}
	}
	return s, nil
}

// CSSVars renders the scheme as a :root block of custom properties.
func (s Scheme) CSSVars() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --daily-background: %s;\n", s.Background)
	fmt.Fprintf(&b, "  --daily-surface: %s;\n", s.Surface)
	fmt.Fprintf(&b, "  --daily-text: %s;\n", s.Text)
	fmt.Fprintf(&b, "  --daily-muted: %s;\n", s.Muted)
	fmt.Fprintf(&b, "  --daily-border: %s;\n", s.Border)
	fmt.Fprintf(&b, "  --daily-accent: %s;\n", s.Accent)
	fmt.Fprintf(&b, "  --daily-accent-soft: %s;\n", s.AccentSoft)
	fmt.Fprintf(&b, "  --daily-font-family: %s;\n", s.FontFamily)
	b.WriteString("}\n")
	return b.String()
}

// MonthName returns the localized name for a month.
func (l Locale) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return l.Months[m-1]
}

// Title formats the calendar caption for a month, e.g. "August 2026"
// or "2026年8月" depending on the locale's title format.
func (l Locale) Title(year int, month time.Month) string {
	return fmt.Sprintf(l.TitleFormat, l.MonthName(month), year)
}

func (l Locale) validate() error {
	if _, err := language.Parse(l.Tag); err != nil {
		return fmt.Errorf("invalid language tag %q: %w", l.Tag, err)
	}
	if len(l.Months) != 12 {
		return fmt.Errorf("expected 12 month names, got %d", len(l.Months))
	}
	if len(l.Weekdays) != 7 {
		return fmt.Errorf("expected 7 weekday names, got %d", len(l.Weekdays))
	}
	if l.TitleFormat == "" {
		return fmt.Errorf("missing title format")
	}
	return nil
}
