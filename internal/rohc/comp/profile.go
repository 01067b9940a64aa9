package comp

import (
	"firestige.xyz/rohc/internal/core"
)

// encodeResult is what a successful profile encode hands back to the
// compressor: the header bytes written, the chosen format and where the
// payload starts inside the uncompressed packet.
type encodeResult struct {
	headerLen     int
	packetType    PacketType
	payloadOffset int
}

// profile is the capability set every ROHC profile implements, mirroring
// the create/check/encode/feedback handler table of the registry.
type profile interface {
	// id returns the RFC 3095 profile identifier.
	id() ProfileID

	// matches reports whether the profile can compress the packet. The
	// classifier asks the most specific enabled profile first.
	matches(hdrs *core.PacketHeaders) bool

	// create initializes the profile-specific part of a fresh context.
	create(ctx *Context, hdrs *core.PacketHeaders) error

	// encode builds one ROHC packet for a packet that already matched
	// the context. On error the context is left untouched.
	encode(ctx *Context, hdrs *core.PacketHeaders, dest []byte) (encodeResult, error)

	// feedback applies decompressor feedback to the context.
	feedback(ctx *Context, fb *feedbackInfo)
}

// profileOrder is the classifier preference: most specific first, the
// Uncompressed profile as universal fallback.
var profileOrder = []ProfileID{ProfileUDP, ProfileIP, ProfileUncompressed}

// newProfile instantiates the implementation of an activatable profile.
// Registry of the profiles this compressor build supports.
func newProfile(id ProfileID) (profile, bool) {
	switch id {
	case ProfileUncompressed:
		return &uncompressedProfile{}, true
	case ProfileIP:
		return &ipProfile{}, true
	case ProfileUDP:
		return &udpProfile{}, true
	default:
		return nil, false
	}
}
