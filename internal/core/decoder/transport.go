package decoder

import (
	"encoding/binary"

	"firestige.xyz/rohc/internal/core"
)

const (
	udpHeaderLen = 8

	// Protocol numbers
	protocolUDP = 17
)

// decodeUDP decodes a UDP header.
func decodeUDP(data []byte) (core.UDPHeader, []byte, error) {
	if len(data) < udpHeaderLen {
		return core.UDPHeader{}, nil, core.ErrPacketTooShort
	}

	udp := core.UDPHeader{}

	// Source Port (2 bytes at offset 0)
	udp.SrcPort = binary.BigEndian.Uint16(data[0:2])

	// Destination Port (2 bytes at offset 2)
	udp.DstPort = binary.BigEndian.Uint16(data[2:4])

	// Length (2 bytes at offset 4) - includes header and data
	udp.Length = binary.BigEndian.Uint16(data[4:6])

	// Checksum (2 bytes at offset 6) - zero means "not computed" for IPv4
	udp.Checksum = binary.BigEndian.Uint16(data[6:8])

	// Payload starts after UDP header
	payload := data[udpHeaderLen:]
	return udp, payload, nil
}
