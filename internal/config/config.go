// Package config holds the rf433d configuration struct described in
// spec section 6, loadable from a YAML file and then overridden by
// CLI flags — the same file-then-flags layering
// doismellburning-samoyed/src/config.go uses for direwolf.conf.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SyncEdge selects which polarity a sync pulse is expected on.
type SyncEdge int

const (
	SyncLow SyncEdge = iota
	SyncHigh
	SyncEdgeBoth
)

// Config is the full set of recognized options from spec section 6.
type Config struct {
	RxPin   string `yaml:"rx_pin"`
	TxPin   string `yaml:"tx_pin"`
	Backend string `yaml:"backend"` // "periph" or "gpiocdev", empty = auto

	AnalyzerMode bool `yaml:"analyzer_mode"`
	RealtimeMode bool `yaml:"realtime_mode"`

	NoiseThresholdUs int `yaml:"noise_threshold_us"`
	DecoderDelayMs   int `yaml:"decoder_delay_ms"`
	BitsToSample     int `yaml:"bits_to_sample"`

	CollectIdenticalCodes bool `yaml:"collect_identical_codes"`

	SyncOnLow   bool `yaml:"sync_on_low"`
	SyncOnHigh  bool `yaml:"sync_on_high"`
	SampleOnLow bool `yaml:"sample_on_low"`
	SampleOnHigh bool `yaml:"sample_on_high"`

	SyncMinUs    int `yaml:"sync_min_us"`
	SyncMaxUs    int `yaml:"sync_max_us"`
	BitDividerUs int `yaml:"bit_divider_us"`

	Verbose bool `yaml:"verbose"`
	Quiet   bool `yaml:"quiet"`

	JSONOutput bool `yaml:"json_output"`
	Histogram  bool `yaml:"histogram"`

	SysfsRoot string `yaml:"sysfs_root"`

	ValidateTransmitterIDs bool     `yaml:"validate_transmitter_ids"`
	KnownTransmitters      []uint16 `yaml:"known_transmitters"`

	// HandlerCallback is not serialized; it is wired by the CLI after
	// loading the rest of the config (spec's "handler_callback").
	HandlerCallback func(interface{}) `yaml:"-"`
}

// Default returns the configuration the original sniffer shipped
// with: 100µs noise floor, ~1s decoder cadence, repeat coalescing on.
func Default() Config {
	return Config{
		RxPin:                 "GPIO27",
		TxPin:                 "GPIO17",
		NoiseThresholdUs:      100,
		DecoderDelayMs:        1000,
		BitsToSample:          0,
		CollectIdenticalCodes: true,
		SampleOnLow:           true,
		SyncMinUs:             2600,
		SyncMaxUs:             10330,
		BitDividerUs:          660,
	}
}

// Load reads a YAML config file into a copy of base, returning the
// merged configuration. Missing fields in the file keep base's value.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// DecoderDelay returns DecoderDelayMs as a time.Duration.
func (c Config) DecoderDelay() time.Duration {
	return time.Duration(c.DecoderDelayMs) * time.Millisecond
}

// NoiseThreshold returns NoiseThresholdUs as a time.Duration.
func (c Config) NoiseThreshold() time.Duration {
	return time.Duration(c.NoiseThresholdUs) * time.Microsecond
}

// IsKnownTransmitter reports whether id appears in the allow-list. An
// empty list is treated as "validation would reject everything", so
// callers should only consult this when ValidateTransmitterIDs is set.
func (c Config) IsKnownTransmitter(id uint16) bool {
	for _, known := range c.KnownTransmitters {
		if known == id {
			return true
		}
	}
	return false
}
