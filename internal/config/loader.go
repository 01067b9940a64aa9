package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"firestige.xyz/rohc/internal/log"
)

// Load reads a compressor configuration file, applies ROHC_* environment
// overrides (ROHC_MAX_CID, ROHC_WLSB_WIDTH, ...), fills defaults and
// validates the result.
func Load(path string) (*CompressorConfig, error) {
	var cfg CompressorConfig
	if err := loadConfigFile(path, &cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Logger == nil {
		cfg.Logger = &log.LoggerConfig{
			Level:   "info",
			Pattern: "%time [%level] %caller: %msg%n",
			Time:    "2006-01-02 15:04:05",
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFile(path string, cfg *CompressorConfig) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var root struct {
		Compressor CompressorConfig `yaml:"compressor"`
	}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	*cfg = root.Compressor
	return nil
}

// applyEnvOverrides lets deployments override single knobs without editing
// the config file. ROHC_MAX_CID=7 overrides compressor.max_cid and so on.
func applyEnvOverrides(cfg *CompressorConfig) error {
	v := viper.New()
	v.SetEnvPrefix("ROHC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	keys := []string{
		"cid_type", "max_cid", "mrru", "wlsb_width",
		"oa_repetitions", "ir_timeout", "fo_timeout",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", k, err)
		}
	}

	if v.IsSet("cid_type") {
		cfg.CIDType = v.GetString("cid_type")
	}
	if v.IsSet("max_cid") {
		cfg.MaxCID = uint16(v.GetUint32("max_cid"))
	}
	if v.IsSet("mrru") {
		cfg.MRRU = uint16(v.GetUint32("mrru"))
	}
	if v.IsSet("wlsb_width") {
		cfg.WLSBWidth = v.GetInt("wlsb_width")
	}
	if v.IsSet("oa_repetitions") {
		cfg.OARepetitions = v.GetInt("oa_repetitions")
	}
	if v.IsSet("ir_timeout") {
		cfg.IRTimeout = v.GetUint32("ir_timeout")
	}
	if v.IsSet("fo_timeout") {
		cfg.FOTimeout = v.GetUint32("fo_timeout")
	}
	return nil
}
