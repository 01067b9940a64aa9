package crc

import "firestige.xyz/rohc/internal/core"

// CRC-STATIC / CRC-DYNAMIC coverage per RFC 3095 §5.9.2: the header CRC of
// UO packets covers the uncompressed header fields, split so the part over
// fields that never change within a flow (CRC-STATIC) can be cached and
// only the CRC-DYNAMIC continuation is recomputed per packet.

// IPv4 field groups (byte offsets into the raw header):
//
//	STATIC:  0 (version/IHL), 9 (protocol), 12-19 (addresses)
//	DYNAMIC: 1 (TOS), 2-3 (total length), 4-5 (ID), 6-7 (flags/offset),
//	         8 (TTL), 10-11 (checksum)
//
// IPv6 field groups:
//
//	STATIC:  0-3 (version/TC/flow label), 6 (next header), 8-39 (addresses)
//	DYNAMIC: 4-5 (payload length), 7 (hop limit)

// StaticIP continues crcIn over the static fields of one raw IP header.
func StaticIP(t Type, raw []byte, version uint8, crcIn byte) byte {
	crc := crcIn
	if version == 4 {
		crc = Calculate(t, raw[0:1], crc)
		crc = Calculate(t, raw[9:10], crc)
		crc = Calculate(t, raw[12:20], crc)
	} else {
		crc = Calculate(t, raw[0:4], crc)
		crc = Calculate(t, raw[6:7], crc)
		crc = Calculate(t, raw[8:40], crc)
	}
	return crc
}

// DynamicIP continues crcIn over the dynamic fields of one raw IP header.
func DynamicIP(t Type, raw []byte, version uint8, crcIn byte) byte {
	crc := crcIn
	if version == 4 {
		crc = Calculate(t, raw[1:9], crc)
		crc = Calculate(t, raw[10:12], crc)
	} else {
		crc = Calculate(t, raw[4:6], crc)
		crc = Calculate(t, raw[7:8], crc)
	}
	return crc
}

// StaticUDP continues crcIn over the UDP ports (bytes 0-3).
func StaticUDP(t Type, raw []byte, crcIn byte) byte {
	return Calculate(t, raw[0:4], crcIn)
}

// DynamicUDP continues crcIn over the UDP length and checksum (bytes 4-7).
func DynamicUDP(t Type, raw []byte, crcIn byte) byte {
	return Calculate(t, raw[4:8], crcIn)
}

// StaticHeaders computes CRC-STATIC over every IP header of the packet,
// outer first. Profiles cache the result and recompute only after a
// static-chain refresh.
func StaticHeaders(t Type, hdrs *core.PacketHeaders) byte {
	crc := StaticIP(t, hdrs.Data[:hdrs.OuterIP.HdrLen], hdrs.OuterIP.Version, InitValue(t))
	if hdrs.HasInner {
		start := hdrs.OuterIP.HdrLen
		crc = StaticIP(t, hdrs.Data[start:start+hdrs.InnerIP.HdrLen], hdrs.InnerIP.Version, crc)
	}
	return crc
}

// DynamicHeaders continues a cached CRC-STATIC over every IP header's
// dynamic fields. Pure and allocation-free, called once per packet.
func DynamicHeaders(t Type, hdrs *core.PacketHeaders, crcStatic byte) byte {
	crc := DynamicIP(t, hdrs.Data[:hdrs.OuterIP.HdrLen], hdrs.OuterIP.Version, crcStatic)
	if hdrs.HasInner {
		start := hdrs.OuterIP.HdrLen
		crc = DynamicIP(t, hdrs.Data[start:start+hdrs.InnerIP.HdrLen], hdrs.InnerIP.Version, crc)
	}
	return crc
}
