package comp

import (
	"fmt"

	"firestige.xyz/rohc/internal/core"
	"firestige.xyz/rohc/internal/core/decoder"
	"firestige.xyz/rohc/internal/log"
)

// RandFunc supplies random numbers for SN initialization
// (RFC 3095 §5.11.1). The compressor truncates the value to 16 bits.
type RandFunc func() uint32

// PacketInfo describes the last packet emitted by a compressor.
type PacketInfo struct {
	PacketType PacketType
	CID        uint16
	ProfileID  ProfileID
	State      State
	Mode       Mode
	HeaderLen  int
	PayloadLen int
	TotalLen   int
}

// Stats counts compressor activity since creation.
type Stats struct {
	PacketsIn       uint32
	PacketsOut      uint32
	UncompressedLen uint64
	CompressedLen   uint64
	PacketsByType   map[PacketType]uint32
}

// Compressor is one ROHC compressor instance: context table, enabled
// profile set, configuration and statistics. Instances are
// single-threaded; two compressors on different goroutines share nothing
// but the immutable CRC tables.
type Compressor struct {
	cidType CIDType
	maxCID  uint16
	mrru    uint16
	jamUse  bool

	wlsbWidth     int
	oaRepetitions int
	irTimeout     uint32
	foTimeout     uint32

	profiles map[ProfileID]profile
	contexts map[uint16]*Context
	byKey    map[contextKey]*Context

	tick   uint64
	randFn RandFunc

	lastInfo PacketInfo
	stats    Stats

	logger log.Logger
}

// contextKey pairs the flow key with the owning profile so a flow
// compressed by the UDP profile and the same flow forced through the
// Uncompressed profile never collide.
type contextKey struct {
	flow    core.FlowKey
	profile ProfileID
}

// New creates a compressor. cidType bounds maxCID; mrru is carried for
// negotiation only (the core never segments) and jamUse is accepted for
// API compatibility with link layers that jam instead of framing.
func New(cidType CIDType, maxCID uint16, mrru uint16, jamUse bool) (*Compressor, error) {
	switch cidType {
	case SmallCID:
		if maxCID > SmallCIDMax {
			return nil, core.ErrInvalidMaxCID
		}
	case LargeCID:
		if maxCID > LargeCIDMax {
			return nil, core.ErrInvalidMaxCID
		}
	default:
		return nil, core.ErrInvalidCIDType
	}
	return &Compressor{
		cidType:       cidType,
		maxCID:        maxCID,
		mrru:          mrru,
		jamUse:        jamUse,
		wlsbWidth:     4,
		oaRepetitions: 3,
		irTimeout:     1700,
		foTimeout:     700,
		profiles:      make(map[ProfileID]profile),
		contexts:      make(map[uint16]*Context),
		byKey:         make(map[contextKey]*Context),
		logger:        log.GetLogger(),
	}, nil
}

// ActivateProfile enables a profile. All profiles are disabled by
// default.
func (c *Compressor) ActivateProfile(id ProfileID) error {
	p, ok := newProfile(id)
	if !ok {
		return fmt.Errorf("%w: profile 0x%04x not supported", core.ErrUnsupported, uint16(id))
	}
	c.profiles[id] = p
	return nil
}

// SetRandomFunc installs the random source used for SN initialization.
// Required before the first Compress call.
func (c *Compressor) SetRandomFunc(fn RandFunc) { c.randFn = fn }

// SetWLSBWindowWidth reconfigures the W-LSB window width for contexts
// created afterwards (default 4).
func (c *Compressor) SetWLSBWindowWidth(w int) {
	if w > 0 {
		c.wlsbWidth = w
	}
}

// SetPeriodicRefreshes reconfigures the U-mode downward refresh
// thresholds (defaults 1700 / 700 packets).
func (c *Compressor) SetPeriodicRefreshes(irTimeout, foTimeout uint32) {
	if irTimeout > 0 {
		c.irTimeout = irTimeout
	}
	if foTimeout > 0 {
		c.foTimeout = foTimeout
	}
}

// SetOARepetitions reconfigures the optimistic-approach repetition count
// (default 3).
func (c *Compressor) SetOARepetitions(n int) {
	if n > 0 {
		c.oaRepetitions = n
	}
}

// Compress compresses one IP packet into dest and returns the number of
// bytes written. On any error the affected context is left exactly as it
// was before the call.
func (c *Compressor) Compress(ip []byte, dest []byte) (int, error) {
	if c.randFn == nil {
		return 0, core.ErrNoRandomSource
	}

	c.tick++
	c.stats.PacketsIn++

	hdrs, err := decoder.DecodeHeaders(ip)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", core.ErrUnsupported, err)
	}

	p := c.classify(&hdrs)
	if p == nil {
		return 0, core.ErrProfileDisabled
	}

	ctx, err := c.findOrCreateContext(p, &hdrs)
	if err != nil {
		return 0, err
	}

	res, err := ctx.profile.encode(ctx, &hdrs, dest)
	if err != nil {
		return 0, err
	}

	// The header fit was verified against the payload before the
	// context committed, so this copy cannot fail.
	payloadLen := len(ip) - res.payloadOffset
	copy(dest[res.headerLen:], ip[res.payloadOffset:])
	total := res.headerLen + payloadLen

	ctx.lastUsedTick = c.tick
	c.stats.PacketsOut++
	c.stats.UncompressedLen += uint64(len(ip))
	c.stats.CompressedLen += uint64(total)
	if c.stats.PacketsByType == nil {
		c.stats.PacketsByType = make(map[PacketType]uint32)
	}
	c.stats.PacketsByType[res.packetType]++

	c.lastInfo = PacketInfo{
		PacketType: res.packetType,
		CID:        ctx.cid,
		ProfileID:  ctx.profile.id(),
		State:      ctx.state,
		Mode:       ctx.mode,
		HeaderLen:  res.headerLen,
		PayloadLen: payloadLen,
		TotalLen:   total,
	}

	if c.logger.IsDebugEnabled() {
		c.logger.Debugf("CID %d: %s packet, %d -> %d bytes",
			ctx.cid, res.packetType, len(ip), total)
	}
	return total, nil
}

// classify returns the most specific enabled profile that can compress
// the packet, the Uncompressed profile acting as universal fallback.
func (c *Compressor) classify(hdrs *core.PacketHeaders) profile {
	for _, id := range profileOrder {
		p, enabled := c.profiles[id]
		if enabled && p.matches(hdrs) {
			return p
		}
	}
	return nil
}

// findOrCreateContext looks the flow up in the context table, allocating
// a fresh CID (smallest free, LRU eviction when full) on a miss.
func (c *Compressor) findOrCreateContext(p profile, hdrs *core.PacketHeaders) (*Context, error) {
	key := contextKey{flow: hdrs.Key(), profile: p.id()}
	if ctx, ok := c.byKey[key]; ok {
		return ctx, nil
	}

	cid, err := c.allocateCID()
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		cid:     cid,
		key:     key.flow,
		profile: p,
		state:   StateIR,
		mode:    ModeU,
		comp:    c,
	}
	if err := p.create(ctx, hdrs); err != nil {
		return nil, err
	}
	c.contexts[cid] = ctx
	c.byKey[key] = ctx
	c.logger.Debugf("CID %d: new context, profile 0x%04x", cid, uint16(p.id()))
	return ctx, nil
}

// allocateCID returns the smallest free CID. With the table full it
// evicts the least recently used context, unless every context was used
// so recently that eviction would thrash — then the caller gets
// ErrInvalidCID.
func (c *Compressor) allocateCID() (uint16, error) {
	for cid := uint16(0); ; cid++ {
		if _, used := c.contexts[cid]; !used {
			return cid, nil
		}
		if cid == c.maxCID {
			break
		}
	}

	var lru *Context
	for cid := uint16(0); ; cid++ {
		ctx := c.contexts[cid]
		if lru == nil || ctx.lastUsedTick < lru.lastUsedTick {
			lru = ctx
		}
		if cid == c.maxCID {
			break
		}
	}

	// "Very recent" means used within the last table-size packets:
	// every context is live and eviction would only churn.
	if c.tick-lru.lastUsedTick <= uint64(c.maxCID)+1 {
		return 0, core.ErrInvalidCID
	}

	c.logger.Debugf("CID %d: evicting LRU context", lru.cid)
	c.destroyContext(lru)
	return lru.cid, nil
}

func (c *Compressor) destroyContext(ctx *Context) {
	delete(c.contexts, ctx.cid)
	delete(c.byKey, contextKey{flow: ctx.key, profile: ctx.profile.id()})
}

// ResetContext destroys the context with the given CID, if any.
func (c *Compressor) ResetContext(cid uint16) {
	if ctx, ok := c.contexts[cid]; ok {
		c.destroyContext(ctx)
	}
}

// LastPacketInfo returns metadata about the most recent packet emitted.
func (c *Compressor) LastPacketInfo() PacketInfo { return c.lastInfo }

// Statistics returns a copy of the compressor counters.
func (c *Compressor) Statistics() Stats {
	s := c.stats
	if c.stats.PacketsByType != nil {
		s.PacketsByType = make(map[PacketType]uint32, len(c.stats.PacketsByType))
		for k, v := range c.stats.PacketsByType {
			s.PacketsByType[k] = v
		}
	}
	return s
}

// ContextCount returns the number of live contexts.
func (c *Compressor) ContextCount() int { return len(c.contexts) }
