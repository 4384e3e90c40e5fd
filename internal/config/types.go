package config

// CalendarConfig bounds the month navigation and seeds the default view.
// Month values are YYYY-MM keys; DefaultMonth and DefaultDay also accept
// "latest", meaning the most recent month or day that has notes.
type CalendarConfig struct {
	MinMonth     string `yaml:"min_month,omitempty" koanf:"min_month"`
	MaxMonth     string `yaml:"max_month,omitempty" koanf:"max_month"`
	DefaultMonth string `yaml:"default_month" koanf:"default_month"`
	DefaultDay   string `yaml:"default_day" koanf:"default_day"`
}

// ServerConfig holds dev server settings.
type ServerConfig struct {
	Port int  `yaml:"port" koanf:"port"`
	Open bool `yaml:"open" koanf:"open"`
}

// CacheConfig holds render cache settings.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

// Config is the top-level daily configuration, corresponding to daily.yml.
type Config struct {
	Title      string            `yaml:"title" koanf:"title"`
	BaseURL    string            `yaml:"base_url,omitempty" koanf:"base_url"`
	ContentDir string            `yaml:"content_dir" koanf:"content_dir"`
	OutputDir  string            `yaml:"output_dir" koanf:"output_dir"`
	Scheme     string            `yaml:"scheme" koanf:"scheme"`
	Locale     string            `yaml:"locale" koanf:"locale"`
	Styles     map[string]string `yaml:"styles,omitempty" koanf:"styles"`
	Include    []string          `yaml:"include" koanf:"include"`
	Exclude    []string          `yaml:"exclude" koanf:"exclude"`
	Calendar   CalendarConfig    `yaml:"calendar" koanf:"calendar"`
	Server     ServerConfig      `yaml:"server" koanf:"server"`
	Cache      CacheConfig       `yaml:"cache" koanf:"cache"`
}
