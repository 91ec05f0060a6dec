package config

import "time"

type (
	NET struct {
		// ReadBufferSize is the size of the buffer in bytes used for a single
		// read from the socket.
		ReadBufferSize int
		// ReadTimeout bounds how long a single read may wait for more bytes.
		// An expired deadline ends request accumulation and is not an error:
		// the bytes collected so far form the whole request. This will
		// truncate clients that pause mid-send, which is a known limitation
		// of the timeout-based framing.
		ReadTimeout time.Duration
	}

	HTTP struct {
		// DefaultHeaders are included into every response unless a handler
		// explicitly overrides them.
		DefaultHeaders map[string]string
		// StrictRequestLine switches the request line decoder from the
		// tolerant predicate scan (the path is the first token starting
		// with a slash, wherever it stands) to strict positional parsing:
		// method, path and version must be tokens 0, 1 and 2.
		StrictRequestLine bool
	}

	FS struct {
		// UploadsDir is the directory uploaded files are stored in. Created
		// at startup when absent.
		UploadsDir string
	}
)

// Config holds settings used across fileserv. Modify defaults returned by
// Default() instead of constructing the struct manually, otherwise zero
// values will be filled in by Fill anyway.
type Config struct {
	NET  NET
	HTTP HTTP
	FS   FS
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize: 4 * 1024,
			ReadTimeout:    time.Second,
		},
		HTTP: HTTP{
			DefaultHeaders: map[string]string{
				"Server":       "fileserv",
				"Content-Type": "application/json",
			},
		},
		FS: FS{
			UploadsDir: "files",
		},
	}
}

// Fill replaces zero values of the config with defaults.
func Fill(cfg *Config) *Config {
	defaults := Default()

	if cfg.NET.ReadBufferSize == 0 {
		cfg.NET.ReadBufferSize = defaults.NET.ReadBufferSize
	}
	if cfg.NET.ReadTimeout == 0 {
		cfg.NET.ReadTimeout = defaults.NET.ReadTimeout
	}
	if cfg.HTTP.DefaultHeaders == nil {
		cfg.HTTP.DefaultHeaders = defaults.HTTP.DefaultHeaders
	}
	if len(cfg.FS.UploadsDir) == 0 {
		cfg.FS.UploadsDir = defaults.FS.UploadsDir
	}

	return cfg
}
