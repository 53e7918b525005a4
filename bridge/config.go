package bridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultQuality is the default lossy re-encode quality
	DefaultQuality = 80
	// DefaultReencode is the image subtype re-encoded by default
	DefaultReencode = "jpeg"
)

type (
	// Config represents the optional YAML bridge config
	Config struct {
		Timeout string       `yaml:"timeout"`
		Images  *ImagePolicy `yaml:"images"`
	}

	// ImagePolicy controls which image subtypes are re-encoded and how
	ImagePolicy struct {
		Reencode []string `yaml:"reencode"`
		Quality  int      `yaml:"quality"`
	}
)

// Applies returns true if subtype should be re-encoded
func (p *ImagePolicy) Applies(subtype string) bool {
	for _, candidate := range p.Reencode {
		if strings.EqualFold(candidate, subtype) {
			return true
		}
	}
	return false
}

func (p *ImagePolicy) validate() error {
	if p.Quality < 1 || p.Quality > 100 {
		return fmt.Errorf("invalid image quality: %v", p.Quality)
	}
	for _, subtype := range p.Reencode {
		if !canReencode(subtype) {
			return fmt.Errorf("unsupported re-encode subtype: %v", subtype)
		}
	}
	return nil
}

// TimeoutDuration parses timeout, empty means none
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Timeout)
}

// LoadConfig reads YAML config from URL
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	ret := &Config{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", URL, err)
	}
	return ret, nil
}

// resolveConfig merges file config with flags, flags take precedence
func resolveConfig(ctx context.Context, fs afs.Service, options *Options) (*Config, time.Duration, error) {
	config := &Config{}
	if options.Config != "" {
		var err error
		if config, err = LoadConfig(ctx, fs, options.Config); err != nil {
			return nil, 0, err
		}
	}
	if config.Images == nil {
		config.Images = &ImagePolicy{}
	}
	if len(options.Reencode) > 0 {
		config.Images.Reencode = options.Reencode
	}
	if config.Images.Reencode == nil {
		config.Images.Reencode = []string{DefaultReencode}
	}
	if options.Quality != 0 {
		config.Images.Quality = options.Quality
	}
	if config.Images.Quality == 0 {
		config.Images.Quality = DefaultQuality
	}
	if err := config.Images.validate(); err != nil {
		return nil, 0, err
	}
	timeout, err := config.TimeoutDuration()
	if err != nil {
		return nil, 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if options.Timeout != 0 {
		timeout = options.Timeout
	}
	return config, timeout, nil
}
