package comp

import (
	"firestige.xyz/rohc/internal/core"
	"firestige.xyz/rohc/internal/rohc/crc"
	"firestige.xyz/rohc/internal/rohc/wlsb"
)

// genContext is the generic RFC 3095 sub-state shared by the IP, UDP,
// UDP-Lite, RTP and ESP profile family. Profile-specific behaviour is
// reached through the hooks capability set; profile-specific state hangs
// off the typed udp field.
type genContext struct {
	sn       uint16
	snWindow *wlsb.Window

	outerIP    ipHeaderInfo
	innerIP    ipHeaderInfo
	ipHdrCount int

	// nextHeaderLen is the size in bytes of the compressed transport
	// header following the IP chain (0 for IP-only, 8 for UDP).
	nextHeaderLen int

	hooks rfc3095Hooks

	// Cached CRC-STATIC values, recomputed only after a static refresh.
	crc3Static     byte
	crc7Static     byte
	crcStaticValid bool

	udp *udpState // non-nil for the UDP profile only

	tmp genTmp
}

// ipHeaderInfo tracks the change state of one IP header of the flow.
type ipHeaderInfo struct {
	version     uint8
	oldProtocol uint8
	oldTOS      uint8
	oldTTL      uint8
	oldDF       bool
	oldID       uint16

	// Trust counters: how many times the current field value has been
	// carried in a dynamic chain or EXT-3 since it last changed. A field
	// is settled once its counter reaches oaRepetitions.
	tosCount uint8
	ttlCount uint8
	dfCount  uint8

	// IP-ID behaviour flags carried in the dynamic chain. The compressor
	// transmits the IP-ID as an offset from SN, so RND stays clear and
	// NBO set for the behaviours supported here.
	rnd bool
	nbo bool

	// idWindow tracks the IP-ID offset (ID - SN), v4 only.
	idWindow *wlsb.Window
}

// genTmp holds the per-call scratch state. Nothing in the context proper
// is touched until commit, so a failed encode leaves the context
// byte-identical to its pre-call state.
type genTmp struct {
	nextSN uint16
	snK    uint
	snKOK  bool

	innerOffset  uint16
	innerOffsetK uint
	outerOffset  uint16
	outerOffsetK uint

	staticChanged bool
	// dynChangedNow: some dynamic field holds a different value than the
	// context (unexpected change, forces FO).
	dynChangedNow bool
	// fieldsSettled: every tracked dynamic field is unchanged and has
	// been repeated oaRepetitions times.
	fieldsSettled bool

	nextState    State
	packetType   PacketType
	ext          extType
	setRestore   State
	clearRestore bool
	involuntary  bool
	refreshIR    bool
	refreshFO    bool

	// UDP profile scratch (RFC 3095 §5.7.7.5 checksum behaviour)
	udpDynamic    bool
	udpCountReset bool
	udpDynEmitted bool
}

// rfc3095Hooks is the profile capability set of the generic engine
// (re-architected from the per-context function-pointer table). All state
// lives in the context; hook implementations are stateless.
type rfc3095Hooks interface {
	// nextSN returns the sequence number for the packet being encoded.
	nextSN(g *genContext, hdrs *core.PacketHeaders) uint16

	// detectNextHeaderChanges inspects the transport header and fills
	// the profile part of tmp. No-op for IP-only.
	detectNextHeaderChanges(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp)

	// decideState picks the state used to encode this packet.
	decideState(ctx *Context, tmp *genTmp) State

	// codeStaticNextHeader appends the next header's static chain part.
	codeStaticNextHeader(g *genContext, hdrs *core.PacketHeaders, w *pktWriter)

	// codeDynamicNextHeader appends the next header's dynamic chain part.
	codeDynamicNextHeader(g *genContext, hdrs *core.PacketHeaders, w *pktWriter)

	// codeUORemainder appends the fields carried at the tail of UO
	// packets.
	codeUORemainder(g *genContext, hdrs *core.PacketHeaders, w *pktWriter)

	// crcStatic / crcDynamic compute the header CRC halves over the
	// uncompressed headers.
	crcStatic(hdrs *core.PacketHeaders, t crc.Type) byte
	crcDynamic(hdrs *core.PacketHeaders, t crc.Type, base byte) byte

	// onCommit finalizes profile state after a successful emit.
	onCommit(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp, pt PacketType)
}

// newGenContext builds the generic sub-state for a fresh context.
// The SN starts from a random value (RFC 3095 §5.11.1).
func newGenContext(c *Compressor, hdrs *core.PacketHeaders, hooks rfc3095Hooks) *genContext {
	g := &genContext{
		sn:       uint16(c.randFn()),
		snWindow: wlsb.New(c.wlsbWidth, wlsb.ShiftSN),
		hooks:    hooks,
	}
	g.ipHdrCount = 1
	initIPInfo(&g.outerIP, &hdrs.OuterIP, c.wlsbWidth)
	if hdrs.HasInner {
		g.ipHdrCount = 2
		initIPInfo(&g.innerIP, &hdrs.InnerIP, c.wlsbWidth)
	}
	return g
}

func initIPInfo(info *ipHeaderInfo, ip *core.IPHeader, width int) {
	info.version = ip.Version
	info.oldProtocol = ip.Protocol
	info.oldTOS = ip.TOS
	info.oldTTL = ip.TTL
	info.oldDF = ip.DF
	info.oldID = ip.ID
	info.rnd = false
	info.nbo = true
	if ip.Version == 4 {
		info.idWindow = wlsb.New(width, wlsb.ShiftIPID)
	}
}

// innermost returns the change-tracking info of the IP header closest to
// the transport header.
func (g *genContext) innermost() *ipHeaderInfo {
	if g.ipHdrCount == 2 {
		return &g.innerIP
	}
	return &g.outerIP
}

// payloadOffset is where the uncompressed payload starts: everything the
// profile compresses away.
func (g *genContext) payloadOffset(hdrs *core.PacketHeaders) int {
	n := hdrs.OuterIP.HdrLen
	if hdrs.HasInner {
		n += hdrs.InnerIP.HdrLen
	}
	return n + g.nextHeaderLen
}

// ─── Change detection ───

func (g *genContext) detectChanges(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp) {
	oa := uint8(ctx.comp.oaRepetitions)

	tmp.nextSN = g.hooks.nextSN(g, hdrs)
	tmp.snK, tmp.snKOK = g.snWindow.MinK(tmp.nextSN, 16)

	tmp.staticChanged = g.staticChanged(hdrs)
	tmp.fieldsSettled = true

	detectIPInfo(&g.outerIP, &hdrs.OuterIP, oa, tmp)
	if g.ipHdrCount == 2 {
		detectIPInfo(&g.innerIP, &hdrs.InnerIP, oa, tmp)
	}

	// IP-ID offset encoding (RFC 3095 §4.5.5): the tracked value is
	// ID - SN so a header whose ID increments with the flow costs zero
	// bits once the offset is established.
	inner := g.innermost()
	innerHdr := hdrs.InnermostIP()
	if inner.version == 4 && inner.idWindow != nil {
		tmp.innerOffset = innerHdr.ID - tmp.nextSN
		if k, ok := inner.idWindow.MinK(tmp.innerOffset, 16); ok {
			tmp.innerOffsetK = k
		} else {
			tmp.innerOffsetK = 16
		}
	}
	if g.ipHdrCount == 2 && g.outerIP.version == 4 && g.outerIP.idWindow != nil {
		tmp.outerOffset = hdrs.OuterIP.ID - tmp.nextSN
		if k, ok := g.outerIP.idWindow.MinK(tmp.outerOffset, 16); ok {
			tmp.outerOffsetK = k
		} else {
			tmp.outerOffsetK = 16
		}
	}

	g.hooks.detectNextHeaderChanges(ctx, hdrs, tmp)

	if tmp.staticChanged {
		g.crcStaticValid = false
	}
	if !g.crcStaticValid {
		g.crc3Static = g.hooks.crcStatic(hdrs, crc.CRC3)
		g.crc7Static = g.hooks.crcStatic(hdrs, crc.CRC7)
		g.crcStaticValid = true
	}
}

func detectIPInfo(info *ipHeaderInfo, ip *core.IPHeader, oa uint8, tmp *genTmp) {
	if ip.TOS != info.oldTOS || ip.TTL != info.oldTTL || ip.DF != info.oldDF {
		tmp.dynChangedNow = true
		tmp.fieldsSettled = false
		return
	}
	if info.tosCount < oa || info.ttlCount < oa || info.dfCount < oa {
		tmp.fieldsSettled = false
	}
}

func (g *genContext) staticChanged(hdrs *core.PacketHeaders) bool {
	if hdrs.OuterIP.Version != g.outerIP.version ||
		hdrs.OuterIP.Protocol != g.outerIP.oldProtocol {
		return true
	}
	if g.ipHdrCount == 2 {
		if !hdrs.HasInner {
			return true
		}
		if hdrs.InnerIP.Version != g.innerIP.version ||
			hdrs.InnerIP.Protocol != g.innerIP.oldProtocol {
			return true
		}
	} else if hdrs.HasInner {
		return true
	}
	return false
}

// ─── State decision ───

// genericDecideState implements the U-mode transition rules of RFC 3095
// §4.3.1 plus the periodic refreshes: upward IR -> FO -> SO ladder driven
// by the optimistic-approach repetition count, involuntary downward
// transitions on change, and timed refreshes.
func genericDecideState(ctx *Context, tmp *genTmp) State {
	c := ctx.comp
	oa := uint32(c.oaRepetitions)
	next := ctx.state

	switch {
	case tmp.staticChanged:
		tmp.clearRestore = true
		tmp.involuntary = true
		next = StateIR

	case tmp.dynChangedNow && ctx.state != StateIR:
		tmp.clearRestore = true
		tmp.involuntary = true
		next = StateFO

	case ctx.state == StateIR:
		if ctx.numSentInCurrentState >= oa {
			if ctx.restoreState > StateIR {
				next = ctx.restoreState
				tmp.clearRestore = true
			} else {
				next = StateFO
			}
		}

	case ctx.state == StateFO:
		if ctx.restoreState > StateFO && ctx.numSentInCurrentState >= oa {
			next = ctx.restoreState
			tmp.clearRestore = true
		} else if ctx.restoreState == StateNone && ctx.numSentInCurrentState > oa && tmp.fieldsSettled {
			// The dynamic chain is repeated once more than the static
			// one before the context is trusted at second order.
			next = StateSO
		}
	}

	// Periodic refreshes (U-mode only). The refresh packet itself counts
	// against the timeout, hence the +1.
	if ctx.mode == ModeU && !tmp.involuntary {
		if ctx.goBackIRCount+1 >= c.irTimeout {
			tmp.refreshIR = true
			if next > ctx.restoreState {
				tmp.setRestore = next
			} else {
				tmp.setRestore = ctx.restoreState
			}
			tmp.clearRestore = false
			next = StateIR
		} else if ctx.goBackFOCount+1 >= c.foTimeout && next == StateSO {
			tmp.refreshFO = true
			tmp.setRestore = StateSO
			tmp.clearRestore = false
			next = StateFO
		}
	}

	return next
}

// ─── Packet format decision ───

func (g *genContext) decidePacket(ctx *Context, tmp *genTmp) {
	switch tmp.nextState {
	case StateIR:
		tmp.packetType = PacketIR
	case StateFO:
		tmp.packetType = g.decideFOPacket(tmp)
	default:
		tmp.packetType = g.decideSOPacket(tmp)
	}
	if tmp.packetType == PacketUOR2 {
		tmp.ext = g.decideExtension(tmp)
	} else {
		tmp.ext = extNone
	}
}

// decideFOPacket picks between UOR-2 and IR-DYN for first-order packets:
// the smallest format that can still carry the whole change set.
func (g *genContext) decideFOPacket(tmp *genTmp) PacketType {
	if !tmp.snKOK || tmp.snK > uor2MaxSNBits {
		return PacketIRDyn
	}
	if g.udp != nil && tmp.udpDynamic {
		// Checksum behaviour in flux: only the dynamic chain carries it.
		return PacketIRDyn
	}
	if tmp.refreshFO {
		// A periodic FO refresh exists to resend the dynamic chain.
		return PacketIRDyn
	}
	return PacketUOR2
}

// decideSOPacket picks the smallest second-order format. Tie-break is by
// size: UO-0 (1 byte) < UO-1 (2 bytes) < UOR-2 (2+ bytes).
func (g *genContext) decideSOPacket(tmp *genTmp) PacketType {
	inner := g.innermost()
	if tmp.snKOK && tmp.fieldsSettled && !(g.udp != nil && tmp.udpDynamic) {
		if tmp.snK <= 4 && tmp.innerOffsetK == 0 && tmp.outerOffsetK == 0 {
			return PacketUO0
		}
		if inner.version == 4 && tmp.snK <= 5 && tmp.innerOffsetK <= 6 && tmp.outerOffsetK == 0 {
			return PacketUO1
		}
	}
	return g.decideFOPacket(tmp)
}

// ─── Encode entry point ───

// rfc3095Encode runs the full per-packet pipeline: change detection,
// state decision, format decision, packet build and, only after the
// packet fits the buffer in full, the atomic context update.
func rfc3095Encode(ctx *Context, hdrs *core.PacketHeaders, dest []byte) (encodeResult, error) {
	g := ctx.gen
	tmp := &g.tmp
	*tmp = genTmp{}

	g.detectChanges(ctx, hdrs, tmp)
	tmp.nextState = g.hooks.decideState(ctx, tmp)
	g.decidePacket(ctx, tmp)

	w := pktWriter{buf: dest}
	switch tmp.packetType {
	case PacketIR:
		g.buildIR(ctx, hdrs, tmp, &w, true)
	case PacketIRDyn:
		g.buildIR(ctx, hdrs, tmp, &w, false)
	case PacketUO0:
		g.buildUO0(ctx, hdrs, tmp, &w)
	case PacketUO1:
		g.buildUO1(ctx, hdrs, tmp, &w)
	default:
		g.buildUOR2(ctx, hdrs, tmp, &w)
	}
	if w.overflow {
		return encodeResult{}, core.ErrBufferTooSmall
	}

	payloadOffset := g.payloadOffset(hdrs)
	payloadLen := len(hdrs.Data) - payloadOffset
	if w.pos+payloadLen > len(dest) {
		return encodeResult{}, core.ErrBufferTooSmall
	}

	g.commit(ctx, hdrs, tmp)

	return encodeResult{
		headerLen:     w.pos,
		packetType:    tmp.packetType,
		payloadOffset: payloadOffset,
	}, nil
}

// ─── Packet builders ───

// buildIR assembles an IR (static + dynamic chain) or IR-DYN (dynamic
// chain only) packet:
//
//	: Add-CID octet                : if for small CIDs and CID != 0
//	| 1111110D (IR) / 11111000    |
//	: 0-2 octets of CID info      : if for large CIDs
//	| Profile                     |
//	| CRC                         | CRC-8 over the whole IR header
//	/ static chain                / IR only
//	/ dynamic chain               /
//	/ SN                          / 2 octets (IR remainder)
func (g *genContext) buildIR(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp, w *pktWriter, withStatic bool) {
	first, counter, err := codeCID(ctx.comp.cidType, ctx.cid, w.buf)
	if err != nil {
		w.overflow = true
		return
	}
	if withStatic {
		w.buf[first] = irDiscriminator | 0x01 // D=1, dynamic chain present
	} else {
		w.buf[first] = irDynDiscriminator
	}
	w.pos = counter

	w.u8(byte(ctx.profile.id()))
	crcPos := w.reserve()

	if withStatic {
		g.codeIPStaticChain(hdrs, w)
		g.hooks.codeStaticNextHeader(g, hdrs, w)
	}
	g.codeIPDynamicChain(hdrs, w)
	g.hooks.codeDynamicNextHeader(g, hdrs, w)

	// IR remainder: the full 16-bit SN.
	w.u16(tmp.nextSN)

	if !w.overflow {
		w.patch(crcPos, crc.Calculate(crc.CRC8, w.buf[:w.pos], crc.Init8))
	}
}

// codeIPStaticChain emits the static part of every IP header
// (RFC 3095 §5.7.7.3/§5.7.7.4), outer first.
func (g *genContext) codeIPStaticChain(hdrs *core.PacketHeaders, w *pktWriter) {
	codeIPStatic(&hdrs.OuterIP, w)
	if hdrs.HasInner {
		codeIPStatic(&hdrs.InnerIP, w)
	}
}

func codeIPStatic(ip *core.IPHeader, w *pktWriter) {
	if ip.Version == 4 {
		w.u8(0x40) // version
		w.u8(ip.Protocol)
		w.bytes(ip.SrcIP.AsSlice())
		w.bytes(ip.DstIP.AsSlice())
		return
	}
	w.u8(0x60 | byte(ip.FlowLabel>>16)&0x0F)
	w.u16(uint16(ip.FlowLabel))
	w.u8(ip.Protocol) // next header
	w.bytes(ip.SrcIP.AsSlice())
	w.bytes(ip.DstIP.AsSlice())
}

// codeIPDynamicChain emits the dynamic part of every IP header, outer
// first.
func (g *genContext) codeIPDynamicChain(hdrs *core.PacketHeaders, w *pktWriter) {
	codeIPDynamic(&hdrs.OuterIP, &g.outerIP, w)
	if hdrs.HasInner {
		codeIPDynamic(&hdrs.InnerIP, &g.innerIP, w)
	}
}

func codeIPDynamic(ip *core.IPHeader, info *ipHeaderInfo, w *pktWriter) {
	if ip.Version == 4 {
		w.u8(ip.TOS)
		w.u8(ip.TTL)
		w.u16(ip.ID)
		flags := byte(0)
		if ip.DF {
			flags |= 0x80
		}
		if info.rnd {
			flags |= 0x40
		}
		if info.nbo {
			flags |= 0x20
		}
		w.u8(flags)
		return
	}
	w.u8(ip.TOS) // traffic class
	w.u8(ip.TTL) // hop limit
}

// buildUO0 assembles a UO-0 packet:
//
//	: Add-CID octet :
//	| 0 SN(4) CRC(3) |
//	/ UO remainder  /
func (g *genContext) buildUO0(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp, w *pktWriter) {
	first, counter, err := codeCID(ctx.comp.cidType, ctx.cid, w.buf)
	if err != nil {
		w.overflow = true
		return
	}
	headerCRC := g.hooks.crcDynamic(hdrs, crc.CRC3, g.crc3Static)
	w.buf[first] = byte(tmp.nextSN&0x0F)<<3 | headerCRC&0x07
	w.pos = counter
	g.hooks.codeUORemainder(g, hdrs, w)
}

// buildUO1 assembles a UO-1 packet (innermost header IPv4 only):
//
//	: Add-CID octet :
//	| 10 IP-ID(6)   |
//	| SN(5) CRC(3)  |
//	/ UO remainder  /
func (g *genContext) buildUO1(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp, w *pktWriter) {
	first, counter, err := codeCID(ctx.comp.cidType, ctx.cid, w.buf)
	if err != nil {
		w.overflow = true
		return
	}
	headerCRC := g.hooks.crcDynamic(hdrs, crc.CRC3, g.crc3Static)
	w.buf[first] = 0x80 | byte(tmp.innerOffset&0x3F)
	w.pos = counter
	w.u8(byte(tmp.nextSN&0x1F)<<3 | headerCRC&0x07)
	g.hooks.codeUORemainder(g, hdrs, w)
}

// uor2MaxSNBits is the SN budget of UOR-2 with EXT-3: 5 bits in the base
// header plus 8 in the extension.
const uor2MaxSNBits = 13

// buildUOR2 assembles a UOR-2 packet with optional extension:
//
//	: Add-CID octet :
//	| 110 SN(5)     |
//	| X CRC(7)      | X = extension present
//	/ extension     /
//	/ UO remainder  /
func (g *genContext) buildUOR2(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp, w *pktWriter) {
	first, counter, err := codeCID(ctx.comp.cidType, ctx.cid, w.buf)
	if err != nil {
		w.overflow = true
		return
	}

	var snBase byte
	switch tmp.ext {
	case extNone:
		snBase = byte(tmp.nextSN & 0x1F)
	case ext3:
		if tmp.snK > 5 {
			snBase = byte(tmp.nextSN>>8) & 0x1F
		} else {
			snBase = byte(tmp.nextSN & 0x1F)
		}
	default:
		// EXT-0/1/2 extend the base SN by their 3 LSBs.
		snBase = byte(tmp.nextSN>>3) & 0x1F
	}
	w.buf[first] = 0xC0 | snBase
	w.pos = counter

	headerCRC := g.hooks.crcDynamic(hdrs, crc.CRC7, g.crc7Static)
	x := byte(0)
	if tmp.ext != extNone {
		x = 0x80
	}
	w.u8(x | headerCRC&0x7F)

	g.codeExtension(ctx, hdrs, tmp, w)
	g.hooks.codeUORemainder(g, hdrs, w)
}

// ─── Commit ───

// commit applies the context update for a successfully emitted packet.
func (g *genContext) commit(ctx *Context, hdrs *core.PacketHeaders, tmp *genTmp) {
	oa := uint8(ctx.comp.oaRepetitions)
	pt := tmp.packetType

	ctx.changeState(tmp.nextState)
	ctx.numSentPackets++
	ctx.numSentInCurrentState++

	if tmp.setRestore != StateNone {
		ctx.restoreState = tmp.setRestore
	} else if tmp.clearRestore {
		ctx.restoreState = StateNone
	}

	// Periodic refresh bookkeeping.
	ctx.goBackIRCount++
	ctx.goBackFOCount++
	if tmp.refreshIR || (tmp.involuntary && tmp.nextState == StateIR) {
		ctx.goBackIRCount = 0
	}
	if pt == PacketIR || pt == PacketIRDyn || tmp.refreshFO {
		ctx.goBackFOCount = 0
	}

	// Sequence number and W-LSB references.
	g.sn = tmp.nextSN
	g.snWindow.Add(tmp.nextSN, tmp.nextSN)

	dynSent := pt == PacketIR || pt == PacketIRDyn || tmp.ext == ext3
	commitIPInfo(&g.outerIP, &hdrs.OuterIP, tmp.nextSN, dynSent, oa)
	if g.ipHdrCount == 2 {
		commitIPInfo(&g.innerIP, &hdrs.InnerIP, tmp.nextSN, dynSent, oa)
	}

	g.hooks.onCommit(ctx, hdrs, tmp, pt)
}

func commitIPInfo(info *ipHeaderInfo, ip *core.IPHeader, sn uint16, dynSent bool, oa uint8) {
	bump := func(count *uint8, changed bool) {
		switch {
		case changed && dynSent:
			*count = 1
		case changed:
			*count = 0
		case dynSent && *count < oa:
			*count++
		}
	}
	bump(&info.tosCount, ip.TOS != info.oldTOS)
	bump(&info.ttlCount, ip.TTL != info.oldTTL)
	bump(&info.dfCount, ip.DF != info.oldDF)

	info.oldTOS = ip.TOS
	info.oldTTL = ip.TTL
	info.oldDF = ip.DF
	info.oldProtocol = ip.Protocol

	if info.version == 4 && info.idWindow != nil {
		info.idWindow.Add(sn, ip.ID-sn)
		info.oldID = ip.ID
	}
}

// rfc3095Feedback is the shared feedback handler of the generic profile
// family.
func rfc3095Feedback(ctx *Context, fb *feedbackInfo) {
	g := ctx.gen
	if fb.rejected {
		// The decompressor refused the context: start over from IR.
		ctx.restoreState = StateNone
		ctx.changeState(StateIR)
		return
	}
	switch fb.ackType {
	case ackTypeACK:
		// The decompressor anchored on snLSB; older window references
		// can no longer be its reference.
		if fb.snValid {
			acked := (g.sn & 0xFF00) | uint16(fb.sn&0xFF)
			if int16(g.sn-acked) < 0 {
				// Those LSBs were last sent in the previous 256-SN span.
				acked -= 0x100
			}
			g.snWindow.Purge(acked)
			if g.outerIP.idWindow != nil {
				g.outerIP.idWindow.Purge(acked)
			}
			if g.ipHdrCount == 2 && g.innerIP.idWindow != nil {
				g.innerIP.idWindow.Purge(acked)
			}
		}
	case ackTypeNACK:
		ctx.restoreState = StateNone
		ctx.changeState(StateFO)
	case ackTypeStaticNACK:
		ctx.restoreState = StateNone
		ctx.changeState(StateIR)
	default:
		ctx.comp.logger.Debugf("context %d: reserved feedback ack-type ignored", ctx.cid)
	}
}
