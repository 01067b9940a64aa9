package comp

import (
	"firestige.xyz/rohc/internal/core"
	"firestige.xyz/rohc/internal/rohc/crc"
)

// uncompressedContext is the profile-specific sub-state of the
// Uncompressed profile.
type uncompressedContext struct {
	irCount       uint32
	normalCount   uint32
	goBackIRCount uint32
}

// uncompressedProfile implements the Uncompressed profile (0x0000,
// RFC 3095 §5.10): packets pass through unchanged, with a periodic IR
// refresh. Its state machine is degenerate: IR and FO only, no SO.
type uncompressedProfile struct{}

func (p *uncompressedProfile) id() ProfileID { return ProfileUncompressed }

// matches always succeeds: the Uncompressed profile is the universal
// fallback and the classifier asks it last.
func (p *uncompressedProfile) matches(_ *core.PacketHeaders) bool { return true }

func (p *uncompressedProfile) create(ctx *Context, _ *core.PacketHeaders) error {
	ctx.uncomp = &uncompressedContext{}
	return nil
}

func (p *uncompressedProfile) encode(ctx *Context, hdrs *core.PacketHeaders, dest []byte) (encodeResult, error) {
	u := ctx.uncomp

	// STEP 1: decide state. Staged so a build failure leaves the
	// context untouched.
	nextState, refresh := p.decideState(ctx)

	// STEP 2: code packet.
	var res encodeResult
	var err error
	if nextState == StateIR {
		res, err = p.codeIRPacket(ctx, dest)
	} else {
		res, err = p.codeNormalPacket(ctx, hdrs, dest)
	}
	if err != nil {
		return encodeResult{}, err
	}
	if payloadLen := len(hdrs.Data) - res.payloadOffset; res.headerLen+payloadLen > len(dest) {
		return encodeResult{}, core.ErrBufferTooSmall
	}

	// STEP 3: update context.
	ctx.changeState(nextState)
	ctx.numSentPackets++
	ctx.numSentInCurrentState++
	if refresh {
		u.goBackIRCount = 0
		u.irCount = 0
	}
	if nextState == StateIR {
		u.irCount++
	} else {
		u.normalCount++
		u.goBackIRCount++
	}
	return res, nil
}

// decideState runs the degenerate machine: IR -> FO after the IR packet
// has been repeated enough times, FO -> IR periodically (U-mode).
func (p *uncompressedProfile) decideState(ctx *Context) (State, bool) {
	u := ctx.uncomp
	state := ctx.state
	if state == StateIR && u.irCount >= uint32(ctx.comp.oaRepetitions) {
		state = StateFO
	}
	if ctx.mode == ModeU && state == StateFO &&
		u.goBackIRCount+1 >= ctx.comp.irTimeout {
		return StateIR, true
	}
	return state, false
}

// codeIRPacket builds the Uncompressed IR packet (RFC 3095 §5.10.1):
//
//	: Add-CID octet         : if for small CIDs and CID != 0
//	| 1111 1100             |
//	: 0-2 octets of CID info: if for large CIDs
//	| Profile = 0           |
//	| CRC                   | CRC-8 over the emitted bytes
//
// The whole original IP packet follows as payload (offset 0).
func (p *uncompressedProfile) codeIRPacket(ctx *Context, dest []byte) (encodeResult, error) {
	first, counter, err := codeCID(ctx.comp.cidType, ctx.cid, dest)
	if err != nil {
		return encodeResult{}, err
	}
	dest[first] = irDiscriminator // D=0, no chains
	if counter+2 > len(dest) {
		return encodeResult{}, core.ErrBufferTooSmall
	}
	dest[counter] = byte(ProfileUncompressed)
	counter++
	dest[counter] = 0
	dest[counter] = crc.Calculate(crc.CRC8, dest[:counter+1], crc.Init8)
	counter++

	return encodeResult{
		headerLen:     counter,
		packetType:    PacketIR,
		payloadOffset: 0,
	}, nil
}

// codeNormalPacket builds the Normal packet (RFC 3095 §5.10.2): the
// first octet of the IP packet doubles as the discriminator, the rest of
// the packet follows untouched (offset 1).
func (p *uncompressedProfile) codeNormalPacket(ctx *Context, hdrs *core.PacketHeaders, dest []byte) (encodeResult, error) {
	first, counter, err := codeCID(ctx.comp.cidType, ctx.cid, dest)
	if err != nil {
		return encodeResult{}, err
	}
	dest[first] = hdrs.Data[0]
	return encodeResult{
		headerLen:     counter,
		packetType:    PacketNormal,
		payloadOffset: 1,
	}, nil
}

func (p *uncompressedProfile) feedback(ctx *Context, fb *feedbackInfo) {
	switch fb.ackType {
	case ackTypeACK, ackTypeNACK:
		// Nothing to advance: the profile keeps no windows.
	case ackTypeStaticNACK:
		ctx.uncomp.irCount = 0
		ctx.changeState(StateIR)
	default:
		ctx.comp.logger.Debugf("context %d: reserved feedback ack-type ignored", ctx.cid)
	}
}
