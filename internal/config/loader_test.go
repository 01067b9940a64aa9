package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rohc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
compressor:
  cid_type: large
  max_cid: 100
  mrru: 1500
  wlsb_width: 8
  oa_repetitions: 5
  ir_timeout: 500
  fo_timeout: 200
  profiles:
    - uncompressed
    - udp
  logger:
    level: debug
    pattern: "%time [%level] %msg%n"
    time: "15:04:05"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "large", cfg.CIDType)
	assert.Equal(t, uint16(100), cfg.MaxCID)
	assert.Equal(t, uint16(1500), cfg.MRRU)
	assert.Equal(t, 8, cfg.WLSBWidth)
	assert.Equal(t, 5, cfg.OARepetitions)
	assert.Equal(t, uint32(500), cfg.IRTimeout)
	assert.Equal(t, uint32(200), cfg.FOTimeout)
	assert.Equal(t, []string{"uncompressed", "udp"}, cfg.Profiles)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
compressor:
  max_cid: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "small", cfg.CIDType)
	assert.Equal(t, DefaultWLSBWidth, cfg.WLSBWidth)
	assert.Equal(t, DefaultOARepetitions, cfg.OARepetitions)
	assert.Equal(t, uint32(DefaultIRTimeout), cfg.IRTimeout)
	assert.Equal(t, uint32(DefaultFOTimeout), cfg.FOTimeout)
	require.NotNil(t, cfg.Logger)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ROHC_MAX_CID", "9")
	t.Setenv("ROHC_WLSB_WIDTH", "16")

	path := writeConfig(t, `
compressor:
  max_cid: 3
  wlsb_width: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(9), cfg.MaxCID)
	assert.Equal(t, 16, cfg.WLSBWidth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"small cid too large", "compressor:\n  cid_type: small\n  max_cid: 16\n"},
		{"large cid too large", "compressor:\n  cid_type: large\n  max_cid: 16384\n"},
		{"unknown cid type", "compressor:\n  cid_type: medium\n"},
		{"fo above ir", "compressor:\n  ir_timeout: 100\n  fo_timeout: 200\n"},
		{"unknown profile", "compressor:\n  profiles: [rtpx]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			assert.Error(t, err)
		})
	}
}
