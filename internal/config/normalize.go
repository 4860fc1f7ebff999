// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultBaudRate        = 115200
	DefaultSourceTimeoutMs = 50
	DefaultPollIntervalMs  = 20
	DefaultMaxBytesPerPoll = 4096
	DefaultStatusTimeoutMs = 2000

	DefaultFeedIntervalMs  = 2000
	DefaultFeedLineDelayMs = 10
	DefaultFeedDiskPath    = "/"

	deviceNameMaxChars = 16
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	p := &cfg.Panel

	if p.Source.BaudRate == 0 {
		p.Source.BaudRate = DefaultBaudRate
	}
	if p.Source.TimeoutMs == 0 {
		p.Source.TimeoutMs = DefaultSourceTimeoutMs
	}
	if p.Poll.IntervalMs == 0 {
		p.Poll.IntervalMs = DefaultPollIntervalMs
	}
	if p.Poll.MaxBytesPerPoll == 0 {
		p.Poll.MaxBytesPerPoll = DefaultMaxBytesPerPoll
	}
	if p.Display.Backend == "" {
		p.Display.Backend = "terminal"
	}

	// ------------------------------------------------------------
	// STATUS BLOCK NORMALIZATION (OPT-IN)
	// ------------------------------------------------------------

	if s := p.Status; s != nil {
		if s.Transport == "" {
			s.Transport = "modbus"
		}
		if s.TimeoutMs == 0 {
			s.TimeoutMs = DefaultStatusTimeoutMs
		}
		// ASCII already validated; truncate to the register budget
		if len(s.DeviceName) > deviceNameMaxChars {
			s.DeviceName = s.DeviceName[:deviceNameMaxChars]
		}
	}

	// ------------------------------------------------------------
	// FEED
	// ------------------------------------------------------------

	f := &cfg.Feed
	if f.BaudRate == 0 {
		f.BaudRate = DefaultBaudRate
	}
	if f.IntervalMs == 0 {
		f.IntervalMs = DefaultFeedIntervalMs
	}
	if f.LineDelayMs == 0 {
		f.LineDelayMs = DefaultFeedLineDelayMs
	}
	if f.DiskPath == "" {
		f.DiskPath = DefaultFeedDiskPath
	}
}
