package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePreview()
	c.normalizeRender()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizePreview() {
	if c.Preview.FrameRate <= 0 {
		c.Preview.FrameRate = defaultFrameRate
	}
	if c.Preview.DefaultGapDuration <= 0 {
		c.Preview.DefaultGapDuration = defaultGapDuration
	}
	if c.Preview.PixelsPerSecond <= 0 {
		c.Preview.PixelsPerSecond = defaultPixelsPerSecond
	}
	if c.Preview.LabelColumnWidth < 0 {
		c.Preview.LabelColumnWidth = defaultLabelColumnWidth
	}
	if c.Preview.SaveDebounceMillis <= 0 {
		c.Preview.SaveDebounceMillis = defaultSaveDebounceMillis
	}
	if c.Preview.VoiceoverVolume <= 0 || c.Preview.VoiceoverVolume > 1 {
		c.Preview.VoiceoverVolume = defaultVoiceoverVolume
	}
	if c.Preview.MusicVolume <= 0 || c.Preview.MusicVolume > 1 {
		c.Preview.MusicVolume = defaultMusicVolume
	}
}

func (c *Config) normalizeRender() {
	if c.Render.APIKey == "" {
		if value, ok := os.LookupEnv("CUTLINE_RENDER_API_KEY"); ok {
			c.Render.APIKey = value
		}
	}
	c.Render.BaseURL = strings.TrimRight(strings.TrimSpace(c.Render.BaseURL), "/")
	if c.Render.BaseURL == "" {
		c.Render.BaseURL = defaultRenderBaseURL
	}
	if c.Render.TimeoutSeconds <= 0 {
		c.Render.TimeoutSeconds = defaultRenderTimeoutSeconds
	}
	c.Render.Format = strings.TrimSpace(c.Render.Format)
	if c.Render.Format == "" {
		c.Render.Format = defaultRenderFormat
	}
	if c.Render.Width <= 0 {
		c.Render.Width = defaultRenderWidth
	}
	if c.Render.Height <= 0 {
		c.Render.Height = defaultRenderHeight
	}
	c.Render.Background = strings.TrimSpace(c.Render.Background)
	if c.Render.Background == "" {
		c.Render.Background = defaultRenderBackground
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
