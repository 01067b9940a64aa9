package comp

import (
	"firestige.xyz/rohc/internal/core"
	"firestige.xyz/rohc/internal/rohc/crc"
)

// udpState is the UDP part of the profile context.
type udpState struct {
	// oldUDP is the previous UDP header, kept for checksum behaviour
	// change detection.
	oldUDP core.UDPHeader

	// checksumChangeCount is the number of times the checksum field was
	// carried in the dynamic chain since its behaviour last flipped
	// between zero and non-zero. Wrapping uint32; only compared against
	// the repetition threshold.
	checksumChangeCount uint32
}

// udpProfile implements the UDP profile (0x0002): IP-only plus the UDP
// static chain (ports) and the checksum dynamic handling.
type udpProfile struct {
	ipProfile
}

func (p *udpProfile) id() ProfileID { return ProfileUDP }

func (p *udpProfile) matches(hdrs *core.PacketHeaders) bool {
	return hdrs.UDP != nil && compressibleIPChain(hdrs)
}

func (p *udpProfile) create(ctx *Context, hdrs *core.PacketHeaders) error {
	g := newGenContext(ctx.comp, hdrs, p)
	g.nextHeaderLen = 8
	g.udp = &udpState{oldUDP: *hdrs.UDP}
	ctx.gen = g
	return nil
}

func (p *udpProfile) encode(ctx *Context, hdrs *core.PacketHeaders, dest []byte) (encodeResult, error) {
	return rfc3095Encode(ctx, hdrs, dest)
}

// ─── rfc3095Hooks overrides ───

// detectNextHeaderChanges applies the checksum behaviour rule: a flip
// between zero and non-zero, or a flip still being repeated, forces the
// dynamic chain (and therefore IR) so the decompressor relearns whether
// UO packets carry a checksum.
//
// The below-threshold clause deliberately conflates "must send" with
// "did change": the first packets after any flip keep re-sending the
// checksum until it has been repeated oaRepetitions times.
func (p *udpProfile) detectNextHeaderChanges(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp) {
	g := ctx.gen
	udp := hdrs.UDP
	flipped := (udp.Checksum != 0 && g.udp.oldUDP.Checksum == 0) ||
		(udp.Checksum == 0 && g.udp.oldUDP.Checksum != 0)

	if flipped || g.udp.checksumChangeCount < uint32(ctx.comp.oaRepetitions) {
		tmp.udpDynamic = true
		if flipped {
			tmp.udpCountReset = true
		}
	}
}

// decideState forces IR while the checksum behaviour is unsettled,
// remembering the state to restore once the repetitions are done.
func (p *udpProfile) decideState(ctx *Context, tmp *genTmp) State {
	if tmp.udpDynamic {
		if ctx.state > StateIR && ctx.restoreState < ctx.state {
			tmp.setRestore = ctx.state
		}
		tmp.involuntary = tmp.udpCountReset
		return StateIR
	}
	return genericDecideState(ctx, tmp)
}

// codeStaticNextHeader appends the static part of the UDP header
// (RFC 3095 §5.7.7.5): source port, destination port.
func (p *udpProfile) codeStaticNextHeader(_ *genContext, hdrs *core.PacketHeaders, w *pktWriter) {
	w.u16(hdrs.UDP.SrcPort)
	w.u16(hdrs.UDP.DstPort)
}

// codeDynamicNextHeader appends the dynamic part of the UDP header: the
// 16-bit checksum.
func (p *udpProfile) codeDynamicNextHeader(g *genContext, hdrs *core.PacketHeaders, w *pktWriter) {
	w.u16(hdrs.UDP.Checksum)
	g.tmp.udpDynEmitted = true
}

// codeUORemainder appends the UDP checksum at the tail of UO packets,
// present iff the checksum is in use (non-zero).
func (p *udpProfile) codeUORemainder(_ *genContext, hdrs *core.PacketHeaders, w *pktWriter) {
	if hdrs.UDP.Checksum != 0 {
		w.u16(hdrs.UDP.Checksum)
	}
}

func (p *udpProfile) crcStatic(hdrs *core.PacketHeaders, t crc.Type) byte {
	c := crc.StaticHeaders(t, hdrs)
	udpStart := hdrs.HdrLen - 8
	return crc.StaticUDP(t, hdrs.Data[udpStart:hdrs.HdrLen], c)
}

func (p *udpProfile) crcDynamic(hdrs *core.PacketHeaders, t crc.Type, base byte) byte {
	c := crc.DynamicHeaders(t, hdrs, base)
	udpStart := hdrs.HdrLen - 8
	return crc.DynamicUDP(t, hdrs.Data[udpStart:hdrs.HdrLen], c)
}

// onCommit finalizes the UDP sub-state: the change counter advances with
// every dynamic-chain emission and the reference header follows the
// packets that refresh the decompressor's dynamic context.
func (p *udpProfile) onCommit(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp, pt PacketType) {
	u := ctx.gen.udp
	if tmp.udpCountReset {
		u.checksumChangeCount = 0
	}
	if tmp.udpDynEmitted {
		u.checksumChangeCount++
	}
	if pt == PacketIR || pt == PacketIRDyn {
		u.oldUDP = *hdrs.UDP
	}
}
