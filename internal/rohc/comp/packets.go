// Package comp implements the RFC 3095 compressor core: the per-flow
// IR/FO/SO state machines, the profile family built around the generic
// RFC 3095 context, packet format selection and the multi-CID context
// table.
package comp

import (
	"firestige.xyz/rohc/internal/core"
)

// CIDType selects the CID space of a compressor.
type CIDType int

const (
	SmallCID CIDType = iota // CID in [0, 15], Add-CID octet on the wire
	LargeCID                // CID in [0, 16383], SDVL-coded on the wire
)

// CID bounds per RFC 3095.
const (
	SmallCIDMax = 15
	LargeCIDMax = (1 << 14) - 1
)

// ProfileID identifies a ROHC profile (RFC 3095 §8).
type ProfileID uint16

const (
	ProfileUncompressed ProfileID = 0x0000
	ProfileRTP          ProfileID = 0x0001
	ProfileUDP          ProfileID = 0x0002
	ProfileESP          ProfileID = 0x0003
	ProfileIP           ProfileID = 0x0004
	ProfileUDPLite      ProfileID = 0x0008
)

// State is a compression context state (RFC 3095 §4.3.1).
type State uint8

const (
	StateNone State = iota
	StateIR         // Initialization & Refresh
	StateFO         // First Order
	StateSO         // Second Order
)

func (s State) String() string {
	switch s {
	case StateIR:
		return "IR"
	case StateFO:
		return "FO"
	case StateSO:
		return "SO"
	default:
		return "none"
	}
}

// Mode is a ROHC operation mode (RFC 3095 §4.4).
type Mode uint8

const (
	ModeUnknown Mode = iota
	ModeU            // Unidirectional
	ModeO            // Bidirectional Optimistic
	ModeR            // Bidirectional Reliable
)

// ModeDescription returns the textual description of an operation mode.
func ModeDescription(m Mode) string {
	switch m {
	case ModeU:
		return "U-mode (unidirectional)"
	case ModeO:
		return "O-mode (bidirectional optimistic)"
	case ModeR:
		return "R-mode (bidirectional reliable)"
	default:
		return "no mode"
	}
}

// PacketType identifies the concrete ROHC packet format emitted for one
// compressed packet.
type PacketType int

const (
	PacketUnknown PacketType = iota
	PacketIR
	PacketIRDyn
	PacketUO0
	PacketUO1
	PacketUOR2
	PacketNormal // Uncompressed profile only
)

func (t PacketType) String() string {
	switch t {
	case PacketIR:
		return "IR"
	case PacketIRDyn:
		return "IR-DYN"
	case PacketUO0:
		return "UO-0"
	case PacketUO1:
		return "UO-1"
	case PacketUOR2:
		return "UOR-2"
	case PacketNormal:
		return "Normal"
	default:
		return "unknown"
	}
}

// Packet discriminator bytes (RFC 3095 §5.7.7.1, §5.7.7.2).
const (
	irDiscriminator    = 0xFC // 1111 110D with D=0
	irDynDiscriminator = 0xF8 // 1111 1000
	addCIDPrefix       = 0xE0 // 1110 CCCC
)

// codeCID writes the CID bytes of a packet into dest.
//
// Small CIDs: an Add-CID octet (1110 CCCC) precedes the packet type byte
// when CID != 0. Large CIDs: the SDVL-coded CID follows the packet type
// byte. Returns the index reserved for the packet type byte and the index
// where the next part of the packet starts.
func codeCID(cidType CIDType, cid uint16, dest []byte) (first int, counter int, err error) {
	if cidType == SmallCID {
		if cid != 0 {
			if len(dest) < 2 {
				return 0, 0, core.ErrBufferTooSmall
			}
			dest[0] = addCIDPrefix | byte(cid&0x0F)
			return 1, 2, nil
		}
		if len(dest) < 1 {
			return 0, 0, core.ErrBufferTooSmall
		}
		return 0, 1, nil
	}

	// Large CID, SDVL-coded after the type byte.
	n := sdvlLen(cid)
	if len(dest) < 1+n {
		return 0, 0, core.ErrBufferTooSmall
	}
	sdvlEncode(cid, dest[1:])
	return 0, 1 + n, nil
}

// sdvlLen returns the self-describing variable-length size of v
// (RFC 3095 §4.5.6). CIDs never exceed 14 bits, so one or two bytes.
func sdvlLen(v uint16) int {
	if v < 0x80 {
		return 1
	}
	return 2
}

// sdvlEncode writes v in SDVL form into dest.
func sdvlEncode(v uint16, dest []byte) int {
	if v < 0x80 {
		dest[0] = byte(v) // 0xxxxxxx
		return 1
	}
	dest[0] = 0x80 | byte(v>>8) // 10xxxxxx
	dest[1] = byte(v)
	return 2
}

// sdvlDecode reads one SDVL-coded value. Returns the value and the number
// of bytes consumed, 0 when data is malformed or the prefix is not a form
// the compressor emits for CIDs.
func sdvlDecode(data []byte) (uint16, int) {
	if len(data) == 0 {
		return 0, 0
	}
	if data[0]&0x80 == 0 {
		return uint16(data[0]), 1
	}
	if data[0]&0xC0 == 0x80 {
		if len(data) < 2 {
			return 0, 0
		}
		return uint16(data[0]&0x3F)<<8 | uint16(data[1]), 2
	}
	return 0, 0
}
