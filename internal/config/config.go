// Package config handles compressor configuration loading.
package config

import (
	"fmt"

	"firestige.xyz/rohc/internal/log"
)

// Profile names accepted in the `profiles:` list.
const (
	ProfileNameUncompressed = "uncompressed"
	ProfileNameUDP          = "udp"
	ProfileNameIP           = "ip"
)

// CompressorConfig is the static configuration of one compressor instance.
// Maps to the `compressor:` root key in YAML.
type CompressorConfig struct {
	// CIDType selects "small" (CID <= 15) or "large" (CID <= 16383).
	CIDType string `yaml:"cid_type" mapstructure:"cid_type"`
	MaxCID  uint16 `yaml:"max_cid" mapstructure:"max_cid"`

	// MRRU is the maximum reconstructed reception unit; 0 disables
	// segmentation (the core never segments, the value is only carried
	// for negotiation).
	MRRU uint16 `yaml:"mrru" mapstructure:"mrru"`

	// WLSBWidth is the W-LSB window width, default 4.
	WLSBWidth int `yaml:"wlsb_width" mapstructure:"wlsb_width"`

	// OARepetitions is the optimistic-approach repetition count,
	// default 3.
	OARepetitions int `yaml:"oa_repetitions" mapstructure:"oa_repetitions"`

	// Periodic refresh thresholds in packets (U-mode), defaults 1700/700.
	IRTimeout uint32 `yaml:"ir_timeout" mapstructure:"ir_timeout"`
	FOTimeout uint32 `yaml:"fo_timeout" mapstructure:"fo_timeout"`

	// Profiles enabled at startup. Empty means none: profiles must be
	// activated explicitly, matching the API default.
	Profiles []string `yaml:"profiles" mapstructure:"profiles"`

	Logger *log.LoggerConfig `yaml:"logger" mapstructure:"logger"`
}

// Defaults mirror the values of the public API setters.
const (
	DefaultWLSBWidth     = 4
	DefaultOARepetitions = 3
	DefaultIRTimeout     = 1700
	DefaultFOTimeout     = 700
)

// ApplyDefaults fills zero-valued fields with their defaults.
func (c *CompressorConfig) ApplyDefaults() {
	if c.CIDType == "" {
		c.CIDType = "small"
	}
	if c.WLSBWidth == 0 {
		c.WLSBWidth = DefaultWLSBWidth
	}
	if c.OARepetitions == 0 {
		c.OARepetitions = DefaultOARepetitions
	}
	if c.IRTimeout == 0 {
		c.IRTimeout = DefaultIRTimeout
	}
	if c.FOTimeout == 0 {
		c.FOTimeout = DefaultFOTimeout
	}
}

// Validate checks invariants the compressor cannot recover from.
func (c *CompressorConfig) Validate() error {
	switch c.CIDType {
	case "small":
		if c.MaxCID > 15 {
			return fmt.Errorf("max_cid %d exceeds small-CID limit 15", c.MaxCID)
		}
	case "large":
		if c.MaxCID > 16383 {
			return fmt.Errorf("max_cid %d exceeds large-CID limit 16383", c.MaxCID)
		}
	default:
		return fmt.Errorf("cid_type must be small or large, got %q", c.CIDType)
	}
	if c.FOTimeout >= c.IRTimeout {
		return fmt.Errorf("fo_timeout %d must be below ir_timeout %d", c.FOTimeout, c.IRTimeout)
	}
	for _, p := range c.Profiles {
		switch p {
		case ProfileNameUncompressed, ProfileNameUDP, ProfileNameIP:
		default:
			return fmt.Errorf("unknown profile %q", p)
		}
	}
	return nil
}
