package rohc

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Version())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "OK", StatusString(nil))
	assert.Equal(t, "BufferTooSmall", StatusString(ErrBufferTooSmall))
	assert.Equal(t, "Unsupported", StatusString(ErrUnsupported))
	assert.Equal(t, "InvalidCid", StatusString(ErrInvalidCID))
	assert.Equal(t, "ProfileDisabled", StatusString(ErrProfileDisabled))
	assert.Equal(t, "InvalidFeedback", StatusString(ErrInvalidFeedback))
}

func TestModeDescription(t *testing.T) {
	assert.Contains(t, ModeDescription(ModeU), "unidirectional")
	assert.Contains(t, ModeDescription(ModeO), "optimistic")
	assert.Contains(t, ModeDescription(ModeR), "reliable")
}

func TestNewFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rohc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
compressor:
  cid_type: small
  max_cid: 15
  profiles:
    - udp
    - uncompressed
`), 0o644))

	c, err := NewFromConfigFile(path)
	require.NoError(t, err)
	c.SetRandomFunc(func() uint32 { return 42 })

	// End to end: one IPv4/UDP packet through the configured stack.
	pkt := make([]byte, 30)
	pkt[0] = 0x45
	binary.BigEndian.PutUint16(pkt[2:4], 30)
	pkt[8] = 64
	pkt[9] = 17
	copy(pkt[12:16], []byte{192, 0, 2, 1})
	copy(pkt[16:20], []byte{192, 0, 2, 2})
	binary.BigEndian.PutUint16(pkt[20:22], 1000)
	binary.BigEndian.PutUint16(pkt[22:24], 2000)
	binary.BigEndian.PutUint16(pkt[24:26], 10)

	dest := make([]byte, 256)
	n, err := c.Compress(pkt, dest)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	info := c.LastPacketInfo()
	assert.Equal(t, ProfileUDP, info.ProfileID)
	assert.Equal(t, "IR", info.PacketType.String())
}
