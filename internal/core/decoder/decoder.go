package decoder

import (
	"firestige.xyz/rohc/internal/core"
)

// DecodeHeaders parses the IP (and optional inner IP and UDP) headers of an
// uncompressed packet. The returned PacketHeaders aliases data; it is only
// valid until the caller's buffer is reused.
//
// A header chain the compressed profiles cannot express is not an error at
// this layer — the classifier maps it to the Uncompressed profile. Only a
// packet that is not even a well-formed IP packet fails.
func DecodeHeaders(data []byte) (core.PacketHeaders, error) {
	hdrs := core.PacketHeaders{Data: data}

	outer, rest, err := decodeIP(data)
	if err != nil {
		return hdrs, err
	}
	hdrs.OuterIP = outer
	hdrs.HdrLen = outer.HdrLen

	innermost := &hdrs.OuterIP

	// One level of IP-in-IP tunnelling is supported.
	if outer.Protocol == protocolIPinIP && !outer.IsFragment() {
		inner, innerRest, err := decodeIP(rest)
		if err != nil {
			return hdrs, err
		}
		hdrs.InnerIP = inner
		hdrs.HasInner = true
		hdrs.HdrLen += inner.HdrLen
		innermost = &hdrs.InnerIP
		rest = innerRest
	}

	if innermost.Protocol == protocolUDP && !innermost.IsFragment() {
		udp, _, err := decodeUDP(rest)
		if err != nil {
			// Truncated UDP header: keep the IP view, the Uncompressed
			// profile can still carry the packet.
			return hdrs, nil
		}
		hdrs.UDP = &udp
		hdrs.HdrLen += udpHeaderLen
	}

	return hdrs, nil
}
