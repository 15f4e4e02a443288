// Package layout describes the dashboard controls: page title, site options,
// and payload slider bounds.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/louisbranch/launchdash/internal/launch"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// SiteOption is one dropdown entry.
type SiteOption struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Slider bounds the payload range control.
type Slider struct {
	Label string    `yaml:"label"`
	Min   float64   `yaml:"min"`
	Max   float64   `yaml:"max"`
	Step  float64   `yaml:"step"`
	Marks []float64 `yaml:"marks"`
}

// Layout is the full control layout.
type Layout struct {
	Title           string       `yaml:"title"`
	SitePlaceholder string       `yaml:"site_placeholder"`
	Sites           []SiteOption `yaml:"sites"`
	PayloadSlider   Slider       `yaml:"payload_slider"`
}

// Default returns the embedded layout.
func Default() (Layout, error) {
	return Parse(defaultYAML)
}

// Load reads a layout file. An empty path returns the embedded default.
func Load(path string) (Layout, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	layout, err := Parse(data)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return layout, nil
}

// Parse decodes and validates a YAML layout document.
func Parse(data []byte) (Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// Validate checks option and slider invariants.
func (l Layout) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return errors.New("title is required")
	}
	if len(l.Sites) == 0 {
		return errors.New("at least one site option is required")
	}
	if l.Sites[0].Value != launch.AllSites {
		return fmt.Errorf("first site option must be %q", launch.AllSites)
	}
	seen := make(map[string]struct{}, len(l.Sites))
	for idx, site := range l.Sites {
		if strings.TrimSpace(site.Value) == "" {
			return fmt.Errorf("site option %d: value is required", idx)
		}
		if _, ok := seen[site.Value]; ok {
			return fmt.Errorf("site option %q is listed more than once", site.Value)
		}
		seen[site.Value] = struct{}{}
	}

	slider := l.PayloadSlider
	if slider.Min >= slider.Max {
		return fmt.Errorf("payload slider min %g must be below max %g", slider.Min, slider.Max)
	}
	if slider.Step <= 0 {
		return fmt.Errorf("payload slider step %g must be positive", slider.Step)
	}
	for _, mark := range slider.Marks {
		if mark < slider.Min || mark > slider.Max {
			return fmt.Errorf("payload slider mark %g is outside %g..%g", mark, slider.Min, slider.Max)
		}
	}
	return nil
}

// SiteLabel returns the display label for a site value, falling back to the value.
func (l Layout) SiteLabel(value string) string {
	for _, site := range l.Sites {
		if site.Value == value {
			if label := strings.TrimSpace(site.Label); label != "" {
				return label
			}
			break
		}
	}
	return value
}
