package comp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/rohc/internal/rohc/crc"
)

func newUncompressedCompressor(t *testing.T) *Compressor {
	t.Helper()
	c, err := New(SmallCID, 15, 0, false)
	require.NoError(t, err)
	require.NoError(t, c.ActivateProfile(ProfileUncompressed))
	c.SetRandomFunc(fixedRand)
	return c
}

func TestUncompressedIRPacketLayout(t *testing.T) {
	c := newUncompressedCompressor(t)
	pkt := makeIPPacket(1, []byte{0xDE, 0xAD})

	dest := make([]byte, 256)
	n, err := c.Compress(pkt, dest)
	require.NoError(t, err)

	// CID 0: | 1111 1100 | Profile=0 | CRC | ip packet...
	require.Equal(t, 3+len(pkt), n)
	assert.Equal(t, byte(0xFC), dest[0])
	assert.Equal(t, byte(0x00), dest[1])

	wantCRC := crc.Calculate(crc.CRC8, []byte{0xFC, 0x00, 0x00}, crc.Init8)
	assert.Equal(t, wantCRC, dest[2], "CRC-8 over the IR header with the CRC byte zeroed")

	assert.Equal(t, pkt, dest[3:n], "payload is the whole original IP packet")
	assert.Equal(t, PacketIR, c.LastPacketInfo().PacketType)
}

func TestUncompressedNormalPacketPassthrough(t *testing.T) {
	c := newUncompressedCompressor(t)
	pkt := makeIPPacket(1, []byte{1, 2, 3})

	dest := make([]byte, 256)
	// Climb out of IR first.
	for i := 0; i < 3; i++ {
		_, err := c.Compress(pkt, dest)
		require.NoError(t, err)
	}

	n, err := c.Compress(pkt, dest)
	require.NoError(t, err)
	assert.Equal(t, PacketNormal, c.LastPacketInfo().PacketType)
	assert.Equal(t, len(pkt), n, "Normal packet for CID 0 adds no overhead")
	assert.Equal(t, pkt, dest[:n])
}

func TestUncompressedPeriodicGoBackIR(t *testing.T) {
	c := newUncompressedCompressor(t)
	c.SetPeriodicRefreshes(10, 5)
	pkt := makeIPPacket(1, []byte{9})

	var types []PacketType
	dest := make([]byte, 256)
	for i := 0; i < 20; i++ {
		_, err := c.Compress(pkt, dest)
		require.NoError(t, err)
		types = append(types, c.LastPacketInfo().PacketType)
	}

	// IR x3, then Normal until the refresh fires.
	assert.Equal(t, PacketIR, types[0])
	assert.Equal(t, PacketIR, types[2])
	assert.Equal(t, PacketNormal, types[3])

	sawRefresh := false
	for _, pt := range types[3:] {
		if pt == PacketIR {
			sawRefresh = true
		}
	}
	assert.True(t, sawRefresh, "periodic go-back-IR never fired")
}

func TestUncompressedFallbackForFragments(t *testing.T) {
	c := newUDPCompressor(t)

	// A fragmented UDP packet cannot ride the UDP profile.
	pkt := makeUDPPacket(flowA, 1, 0x1234, []byte{1})
	pkt[6] = 0x20 // MF flag

	dest := make([]byte, 256)
	_, err := c.Compress(pkt, dest)
	require.NoError(t, err)
	assert.Equal(t, ProfileUncompressed, c.LastPacketInfo().ProfileID)
}

func TestUncompressedAddCID(t *testing.T) {
	c := newUncompressedCompressor(t)
	pktA := makeIPPacket(1, []byte{1})
	pktB := makeIPPacket(1, []byte{2})
	// Distinct flow for the second context.
	pktB[15] = 77

	dest := make([]byte, 256)
	_, err := c.Compress(pktA, dest)
	require.NoError(t, err)

	n, err := c.Compress(pktB, dest)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), c.LastPacketInfo().CID)
	assert.Equal(t, byte(0xE1), dest[0], "Add-CID octet for CID 1")
	assert.Equal(t, 1+3+len(pktB), n)
}
