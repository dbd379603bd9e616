package config

const (
	defaultDataDir = "~/.local/share/cutline"
	defaultLogDir  = "~/.local/share/cutline/logs"
	defaultAPIBind = "127.0.0.1:7519"

	defaultFrameRate          = 60
	defaultGapDuration        = 1.0
	defaultPixelsPerSecond    = 48.0
	defaultLabelColumnWidth   = 112.0
	defaultSaveDebounceMillis = 600
	defaultVoiceoverVolume    = 1.0
	defaultMusicVolume        = 0.25

	defaultRenderBaseURL        = "https://render.internal.example.com"
	defaultRenderTimeoutSeconds = 30
	defaultRenderFormat         = "mp4"
	defaultRenderWidth          = 1080
	defaultRenderHeight         = 1920
	defaultRenderBackground     = "#000000"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Preview: Preview{
			FrameRate:          defaultFrameRate,
			DefaultGapDuration: defaultGapDuration,
			PixelsPerSecond:    defaultPixelsPerSecond,
			LabelColumnWidth:   defaultLabelColumnWidth,
			SaveDebounceMillis: defaultSaveDebounceMillis,
			VoiceoverVolume:    defaultVoiceoverVolume,
			MusicVolume:        defaultMusicVolume,
		},
		Render: Render{
			BaseURL:        defaultRenderBaseURL,
			TimeoutSeconds: defaultRenderTimeoutSeconds,
			Format:         defaultRenderFormat,
			Width:          defaultRenderWidth,
			Height:         defaultRenderHeight,
			Background:     defaultRenderBackground,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
