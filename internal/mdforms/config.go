package mdforms

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	EngineGoldmark    = "goldmark"
	EngineBlackfriday = "blackfriday"
)

// ConfigFileName is looked up when LoadConfig is given a directory.
const ConfigFileName = "mdforms.yaml"

type HighlightConfig struct {
	Style       string `yaml:"style,omitempty"`
	PrintStyle  string `yaml:"print_style,omitempty"`
	LineNumbers bool   `yaml:"line_numbers,omitempty"`
}

type TOCConfig struct {
	Enabled  bool `yaml:"enabled,omitempty"`
	MinDepth int  `yaml:"min_depth,omitempty"`
	MaxDepth int  `yaml:"max_depth,omitempty"`
}

type PageConfig struct {
	Title       string   `yaml:"title,omitempty"`
	Lang        string   `yaml:"lang,omitempty"`
	Stylesheets []string `yaml:"stylesheets,omitempty"`
}

type Config struct {
	Engine        string          `yaml:"engine,omitempty"`
	SpacesInLinks bool            `yaml:"spaces_in_links,omitempty"`
	XHTML         bool            `yaml:"xhtml,omitempty"`
	Unsafe        bool            `yaml:"unsafe,omitempty"`
	Highlight     HighlightConfig `yaml:"highlight,omitempty"`
	TOC           TOCConfig       `yaml:"toc,omitempty"`
	Page          PageConfig      `yaml:"page,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine:        EngineGoldmark,
		SpacesInLinks: true,
		Highlight: HighlightConfig{
			Style:      "catppuccin-mocha",
			PrintStyle: "algol",
		},
		TOC: TOCConfig{
			MinDepth: 1,
			MaxDepth: 5,
		},
		Page: PageConfig{
			Lang: "en",
		},
	}
}

func (c *Config) Validate() error {
	switch c.Engine {
	case EngineGoldmark, EngineBlackfriday:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if c.TOC.MinDepth < 1 || c.TOC.MaxDepth > 6 || c.TOC.MinDepth > c.TOC.MaxDepth {
		return fmt.Errorf("invalid toc depth range %d..%d", c.TOC.MinDepth, c.TOC.MaxDepth)
	}
	return nil
}

// LoadConfig reads a YAML config file over the defaults. Keys absent from
// the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	var filename string
	if stat.IsDir() {
		filename = filepath.Join(path, ConfigFileName)
	} else {
		filename = path
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		log.Printf("WARN: could not parse %s\n", filename)
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}
