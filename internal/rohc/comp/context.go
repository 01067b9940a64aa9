package comp

import (
	"firestige.xyz/rohc/internal/core"
)

// Context is the per-flow compression state. It is owned exclusively by
// its compressor; callers only ever see CID values.
//
// The profile-specific sub-state lives in exactly one of the typed fields
// below (gen for the RFC 3095 generic profiles, uncomp for the
// Uncompressed profile); there is no opaque pointer to cast.
type Context struct {
	cid     uint16
	key     core.FlowKey
	profile profile

	state State
	mode  Mode

	numSentPackets        uint32
	numSentInCurrentState uint32
	lastUsedTick          uint64

	// Periodic refresh counters (U-mode). Incremented per sent packet,
	// reset when the corresponding refresh fires.
	goBackIRCount uint32
	goBackFOCount uint32

	// restoreState is the state to return to once a forced IR refresh
	// (periodic timeout, UDP checksum behaviour change) has been
	// repeated oaRepetitions times. StateNone when the context is on
	// the normal upward ladder.
	restoreState State

	gen    *genContext
	uncomp *uncompressedContext

	comp *Compressor
}

// changeState moves the context to a new state, resetting the per-state
// send counter on a real transition.
func (ctx *Context) changeState(next State) {
	if ctx.state != next {
		if ctx.comp.logger.IsDebugEnabled() {
			ctx.comp.logger.Debugf("context %d: state %s -> %s", ctx.cid, ctx.state, next)
		}
		ctx.state = next
		ctx.numSentInCurrentState = 0
	}
}

// changeMode switches the operation mode. A mode change re-enters IR so
// the decompressor relearns the context under the new mode.
func (ctx *Context) changeMode(next Mode) {
	if ctx.mode != next {
		ctx.comp.logger.Debugf("context %d: mode %s -> %s",
			ctx.cid, ModeDescription(ctx.mode), ModeDescription(next))
		ctx.mode = next
		ctx.restoreState = StateNone
		ctx.changeState(StateIR)
	}
}
