package decoder

import (
	"encoding/binary"
	"testing"
)

func ipv4Header(protocol uint8, id uint16, totalLen uint16) []byte {
	h := make([]byte, 20)
	h[0] = 0x45
	binary.BigEndian.PutUint16(h[2:4], totalLen)
	binary.BigEndian.PutUint16(h[4:6], id)
	h[8] = 64
	h[9] = protocol
	copy(h[12:16], []byte{192, 0, 2, 1})
	copy(h[16:20], []byte{192, 0, 2, 2})
	return h
}

func udpHeader(src, dst, length, checksum uint16) []byte {
	h := make([]byte, 8)
	binary.BigEndian.PutUint16(h[0:2], src)
	binary.BigEndian.PutUint16(h[2:4], dst)
	binary.BigEndian.PutUint16(h[4:6], length)
	binary.BigEndian.PutUint16(h[6:8], checksum)
	return h
}

func TestDecodeHeadersUDP(t *testing.T) {
	payload := []byte{0xCA, 0xFE}
	pkt := append(ipv4Header(protocolUDP, 7, uint16(20+8+len(payload))),
		append(udpHeader(5004, 5006, uint16(8+len(payload)), 0x1234), payload...)...)

	hdrs, err := DecodeHeaders(pkt)
	if err != nil {
		t.Fatalf("DecodeHeaders failed: %v", err)
	}
	if hdrs.UDP == nil {
		t.Fatal("UDP header not decoded")
	}
	if hdrs.UDP.SrcPort != 5004 || hdrs.UDP.DstPort != 5006 {
		t.Errorf("ports %d/%d, want 5004/5006", hdrs.UDP.SrcPort, hdrs.UDP.DstPort)
	}
	if hdrs.UDP.Checksum != 0x1234 {
		t.Errorf("checksum 0x%04x, want 0x1234", hdrs.UDP.Checksum)
	}
	if hdrs.HdrLen != 28 {
		t.Errorf("HdrLen %d, want 28", hdrs.HdrLen)
	}
	if hdrs.HasInner {
		t.Error("unexpected inner IP header")
	}

	key := hdrs.Key()
	if key.SrcPort != 5004 || key.Protocol != protocolUDP {
		t.Errorf("flow key %+v wrong", key)
	}
}

func TestDecodeHeadersIPinIP(t *testing.T) {
	payload := []byte{0x01}
	inner := append(ipv4Header(protocolUDP, 9, uint16(20+8+len(payload))),
		append(udpHeader(1000, 2000, uint16(8+len(payload)), 0), payload...)...)
	outer := ipv4Header(protocolIPinIP, 3, uint16(20+len(inner)))
	pkt := append(outer, inner...)

	hdrs, err := DecodeHeaders(pkt)
	if err != nil {
		t.Fatalf("DecodeHeaders failed: %v", err)
	}
	if !hdrs.HasInner {
		t.Fatal("inner IP header not decoded")
	}
	if hdrs.InnerIP.ID != 9 {
		t.Errorf("inner ID %d, want 9", hdrs.InnerIP.ID)
	}
	if hdrs.UDP == nil {
		t.Fatal("UDP behind tunnel not decoded")
	}
	if hdrs.HdrLen != 48 {
		t.Errorf("HdrLen %d, want 48", hdrs.HdrLen)
	}
	if hdrs.InnermostIP() != &hdrs.InnerIP {
		t.Error("InnermostIP should point at the inner header")
	}
}

func TestDecodeHeadersTruncatedUDP(t *testing.T) {
	// IP claims UDP but only 4 bytes follow: the IP view must survive
	// so the Uncompressed profile can still carry the packet.
	pkt := append(ipv4Header(protocolUDP, 1, 24), 0x13, 0x8C, 0x13, 0x8E)

	hdrs, err := DecodeHeaders(pkt)
	if err != nil {
		t.Fatalf("DecodeHeaders failed: %v", err)
	}
	if hdrs.UDP != nil {
		t.Error("truncated UDP header should not be decoded")
	}
	if hdrs.HdrLen != 20 {
		t.Errorf("HdrLen %d, want 20", hdrs.HdrLen)
	}
}
