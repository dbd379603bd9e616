package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePreview(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePreview() error {
	if c.Preview.FrameRate > 240 {
		return errors.New("preview.frame_rate must be 240 or lower")
	}
	if c.Preview.DefaultGapDuration < 0.2 || c.Preview.DefaultGapDuration > 2.0 {
		return errors.New("preview.default_gap_duration must be between 0.2 and 2.0 seconds")
	}
	return nil
}

func (c *Config) validateRender() error {
	if !strings.HasPrefix(c.Render.BaseURL, "http://") && !strings.HasPrefix(c.Render.BaseURL, "https://") {
		return fmt.Errorf("render.base_url %q must be an http(s) URL", c.Render.BaseURL)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New("render.width and render.height must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
