// Package core defines core data structures with zero external dependencies.
package core

import "net/netip"

// IPHeader represents a parsed L3 IP header (IPv4/IPv6).
type IPHeader struct {
	Version  uint8
	TOS      uint8 // Traffic Class for IPv6
	TotalLen uint16
	TTL      uint8 // Hop Limit for IPv6
	Protocol uint8 // TCP=6, UDP=17, IP-in-IP=4
	SrcIP    netip.Addr
	DstIP    netip.Addr

	// IPv4-specific fields (zero for IPv6)
	ID      uint16
	DF      bool
	MF      bool
	FragOff uint16

	// IPv6-specific fields (zero for IPv4)
	FlowLabel uint32

	// HdrLen is the on-wire header length in bytes, options included.
	HdrLen int
}

// IsV4 reports whether the header is IPv4.
func (h *IPHeader) IsV4() bool { return h.Version == 4 }

// IsFragment reports whether the packet is an IPv4 fragment.
// Fragments cannot be compressed by the IP/UDP profiles.
func (h *IPHeader) IsFragment() bool { return h.MF || h.FragOff != 0 }

// UDPHeader represents a parsed UDP header.
type UDPHeader struct {
	SrcPort  uint16
	DstPort  uint16
	Length   uint16
	Checksum uint16
}

// PacketHeaders is the parsed view of one uncompressed packet handed to the
// compressor. Slices alias the caller's buffer and are only valid for the
// duration of one compress call.
type PacketHeaders struct {
	OuterIP  IPHeader
	InnerIP  IPHeader // valid only when HasInner
	HasInner bool
	UDP      *UDPHeader

	// HdrLen is the total length in bytes of all parsed headers; the
	// packet payload starts at Data[HdrLen].
	HdrLen int

	// Data is the whole uncompressed packet, headers included.
	Data []byte
}

// InnermostIP returns the IP header closest to the transport header.
func (p *PacketHeaders) InnermostIP() *IPHeader {
	if p.HasInner {
		return &p.InnerIP
	}
	return &p.OuterIP
}

// FlowKey identifies a flow for context matching. Ports are zero for
// flows without a UDP header.
type FlowKey struct {
	SrcIP    netip.Addr
	DstIP    netip.Addr
	Protocol uint8
	SrcPort  uint16
	DstPort  uint16
}

// Key derives the flow key used for compression context lookup.
// The innermost IP header identifies the flow when tunnelled.
func (p *PacketHeaders) Key() FlowKey {
	ip := p.InnermostIP()
	k := FlowKey{
		SrcIP:    ip.SrcIP,
		DstIP:    ip.DstIP,
		Protocol: ip.Protocol,
	}
	if p.UDP != nil {
		k.SrcPort = p.UDP.SrcPort
		k.DstPort = p.UDP.DstPort
	}
	return k
}
