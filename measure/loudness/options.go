package loudness

// CalibrationOffsetDB maps digital full scale to an approximate sound
// pressure level. It is a heuristic for uncalibrated microphones.
const CalibrationOffsetDB = 94.0

// DefaultWindowSize is the analysis window length in samples.
const DefaultWindowSize = 4096

// Config defines the windowed level measurement.
type Config struct {
	WindowSize          int
	CalibrationOffsetDB float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 4096-sample window with the 94 dB offset.
func DefaultConfig() Config {
	return Config{
		WindowSize:          DefaultWindowSize,
		CalibrationOffsetDB: CalibrationOffsetDB,
	}
}

// WithWindowSize sets the window length in samples.
func WithWindowSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.WindowSize = n
		}
	}
}

// WithCalibrationOffset sets the dB offset added to every level.
func WithCalibrationOffset(db float64) Option {
	return func(cfg *Config) {
		cfg.CalibrationOffsetDB = db
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
