package comp

import (
	"firestige.xyz/rohc/internal/core"
	"firestige.xyz/rohc/internal/rohc/crc"
)

// ipProfile implements the IP-only profile (0x0004): the full generic
// RFC 3095 engine with a compressor-generated SN and no next header.
type ipProfile struct{}

func (p *ipProfile) id() ProfileID { return ProfileIP }

// matches accepts any non-fragmented, option-free IPv4 or IPv6 packet.
// Headers the profile cannot express fall through to the Uncompressed
// profile.
func (p *ipProfile) matches(hdrs *core.PacketHeaders) bool {
	return compressibleIPChain(hdrs)
}

func compressibleIPChain(hdrs *core.PacketHeaders) bool {
	if !compressibleIPHeader(&hdrs.OuterIP) {
		return false
	}
	if hdrs.HasInner && !compressibleIPHeader(&hdrs.InnerIP) {
		return false
	}
	return true
}

func compressibleIPHeader(ip *core.IPHeader) bool {
	if ip.IsFragment() {
		return false
	}
	// IPv4 options are not covered by the static/dynamic chains.
	if ip.Version == 4 && ip.HdrLen != 20 {
		return false
	}
	return true
}

func (p *ipProfile) create(ctx *Context, hdrs *core.PacketHeaders) error {
	ctx.gen = newGenContext(ctx.comp, hdrs, p)
	return nil
}

func (p *ipProfile) encode(ctx *Context, hdrs *core.PacketHeaders, dest []byte) (encodeResult, error) {
	return rfc3095Encode(ctx, hdrs, dest)
}

func (p *ipProfile) feedback(ctx *Context, fb *feedbackInfo) {
	rfc3095Feedback(ctx, fb)
}

// ─── rfc3095Hooks ───

// nextSN increments the compressor-generated SN by one per packet.
func (p *ipProfile) nextSN(g *genContext, _ *core.PacketHeaders) uint16 {
	return g.sn + 1
}

func (p *ipProfile) detectNextHeaderChanges(_ *Context, _ *core.PacketHeaders, _ *genTmp) {}

func (p *ipProfile) decideState(ctx *Context, tmp *genTmp) State {
	return genericDecideState(ctx, tmp)
}

func (p *ipProfile) codeStaticNextHeader(_ *genContext, _ *core.PacketHeaders, _ *pktWriter)  {}
func (p *ipProfile) codeDynamicNextHeader(_ *genContext, _ *core.PacketHeaders, _ *pktWriter) {}
func (p *ipProfile) codeUORemainder(_ *genContext, _ *core.PacketHeaders, _ *pktWriter)       {}

func (p *ipProfile) crcStatic(hdrs *core.PacketHeaders, t crc.Type) byte {
	return crc.StaticHeaders(t, hdrs)
}

func (p *ipProfile) crcDynamic(hdrs *core.PacketHeaders, t crc.Type, base byte) byte {
	return crc.DynamicHeaders(t, hdrs, base)
}

func (p *ipProfile) onCommit(_ *Context, _ *core.PacketHeaders, _ *genTmp, _ PacketType) {}
