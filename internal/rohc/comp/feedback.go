package comp

import (
	"firestige.xyz/rohc/internal/core"
	"firestige.xyz/rohc/internal/rohc/crc"
)

// Feedback ack-types (RFC 3095 §5.7.6.1).
type ackType int

const (
	ackTypeACK ackType = iota
	ackTypeNACK
	ackTypeStaticNACK
	ackTypeReserved
)

// FEEDBACK-2 option types (RFC 3095 §5.7.6.3 ff).
const (
	fbOptCRC        = 1
	fbOptReject     = 2
	fbOptSNNotValid = 3
	fbOptSN         = 4
	fbOptLoss       = 7
)

// feedbackInfo is the parsed, validated view of one feedback packet as
// handed to a profile.
type feedbackInfo struct {
	cid      uint16
	ackType  ackType
	mode     Mode // ModeUnknown when the feedback requests no change
	sn       uint16
	snValid  bool
	crcOK    bool // a CRC option was present and matched
	rejected bool // Reject option seen
	loss     bool
}

var zeroByte = []byte{0}

// DeliverFeedback ingests one feedback packet received from the
// decompressor on the reverse channel. A packet whose feedback header
// cannot be parsed, or that names an unknown CID, is rejected with
// ErrInvalidFeedback. FEEDBACK-2 with a failing CRC or malformed options
// is dropped silently (logged at debug level) and nil is returned.
func (c *Compressor) DeliverFeedback(data []byte) error {
	fb, payloadAt, payloadLen, ok := c.parseFeedbackEnvelope(data)
	if !ok {
		return core.ErrInvalidFeedback
	}
	payload := data[payloadAt : payloadAt+payloadLen]

	ctx, exists := c.contexts[fb.cid]
	if !exists {
		c.logger.Debugf("feedback for unknown CID %d dropped", fb.cid)
		return core.ErrInvalidFeedback
	}

	if len(payload) == 1 {
		// FEEDBACK-1: the single octet holds profile-specific SN LSBs,
		// an implicit ACK.
		fb.ackType = ackTypeACK
		fb.sn = uint16(payload[0])
		fb.snValid = true
		ctx.profile.feedback(ctx, &fb)
		return nil
	}

	if !c.parseFeedback2(data, payloadAt, payloadLen, &fb) {
		// Invalid CRC or malformed options: discard silently.
		return nil
	}

	// A mode change is honored only when protected by a valid CRC.
	if fb.mode != ModeUnknown {
		if fb.crcOK {
			ctx.changeMode(fb.mode)
		} else {
			c.logger.Debugf("context %d: mode change requested without CRC, ignored", fb.cid)
		}
	}

	ctx.profile.feedback(ctx, &fb)
	return nil
}

// parseFeedbackEnvelope unwraps the feedback header (RFC 3095 §5.2.2):
//
//	| 1111 0 code(3) |  code = size, or 0 followed by a size octet
//	: Add-CID / large CID :
//	/ feedback data       /
//
// Returns the CID info plus the offset and length of the type-specific
// data inside the original buffer.
func (c *Compressor) parseFeedbackEnvelope(data []byte) (fb feedbackInfo, payloadAt, payloadLen int, ok bool) {
	if len(data) < 2 || data[0]&0xF8 != 0xF0 {
		return fb, 0, 0, false
	}
	size := int(data[0] & 0x07)
	pos := 1
	if size == 0 {
		size = int(data[1])
		pos = 2
	}
	if pos+size > len(data) {
		return fb, 0, 0, false
	}
	end := pos + size

	// CID extraction mirrors the packet path.
	if c.cidType == SmallCID {
		if pos < end && data[pos]&0xF0 == addCIDPrefix {
			fb.cid = uint16(data[pos] & 0x0F)
			pos++
		}
	} else {
		v, n := sdvlDecode(data[pos:end])
		if n == 0 {
			return fb, 0, 0, false
		}
		fb.cid = v
		pos += n
	}
	if pos >= end {
		return fb, 0, 0, false
	}
	return fb, pos, end - pos, true
}

// parseFeedback2 parses a FEEDBACK-2 payload:
//
//	| AT(2) Mode(2) SN(4) | ‖ | SN(8) | ‖ options...
//
// where each option is | Type(4) Len(4) | ‖ value. Returns false when the
// feedback must be discarded.
func (c *Compressor) parseFeedback2(whole []byte, payloadAt, payloadLen int, fb *feedbackInfo) bool {
	if payloadLen < 2 {
		return false
	}
	payload := whole[payloadAt : payloadAt+payloadLen]
	fb.ackType = ackType(payload[0] >> 6)
	fb.mode = Mode(payload[0] >> 4 & 0x03)
	fb.sn = uint16(payload[0]&0x0F)<<8 | uint16(payload[1])
	fb.snValid = true

	crcInPacket := byte(0)
	crcOptAt := -1 // index of the CRC value octet inside whole

	pos := 2
	for pos < payloadLen {
		opt := int(payload[pos] >> 4)
		optLen := int(payload[pos] & 0x0F)
		if pos+1+optLen > payloadLen {
			c.logger.Debugf("feedback option %d truncated, feedback dropped", opt)
			return false
		}
		switch opt {
		case fbOptCRC:
			if optLen != 1 {
				return false
			}
			crcInPacket = payload[pos+1]
			crcOptAt = payloadAt + pos + 1
		case fbOptReject:
			fb.rejected = true
		case fbOptSNNotValid:
			fb.snValid = false
		case fbOptSN:
			if optLen == 1 {
				fb.sn = fb.sn<<8 | uint16(payload[pos+1])
			}
		case fbOptLoss:
			fb.loss = true
		default:
			c.logger.Debugf("unknown feedback option %d ignored", opt)
		}
		pos += 1 + optLen
	}

	if crcOptAt >= 0 {
		// CRC-8 over the whole feedback packet with the CRC octet
		// zeroed.
		computed := crc.Calculate(crc.CRC8, whole[:crcOptAt], crc.Init8)
		computed = crc.Calculate(crc.CRC8, zeroByte, computed)
		computed = crc.Calculate(crc.CRC8, whole[crcOptAt+1:], computed)
		if computed != crcInPacket {
			c.logger.Debugf("feedback CRC check failed, feedback dropped")
			return false
		}
		fb.crcOK = true
	}
	return true
}
