package decoder

import (
	"net/netip"
	"testing"

	"golang.org/x/net/ipv4"
)

func TestDecodeIPv4Basic(t *testing.T) {
	// Minimal IPv4 header (20 bytes)
	data := []byte{
		0x45,       // Version 4, IHL 5
		0x10,       // TOS
		0x00, 0x1C, // Total Length: 28 bytes
		0x12, 0x34, // Identification
		0x40, 0x00, // Flags (DF), Fragment Offset
		0x40,       // TTL: 64
		0x11,       // Protocol: UDP (17)
		0x00, 0x00, // Checksum
		192, 168, 1, 1, // Src IP
		192, 168, 1, 2, // Dst IP
		0x01, 0x02, 0x03, 0x04, // Payload
	}

	ip, payload, err := decodeIPv4(data)
	if err != nil {
		t.Fatalf("decodeIPv4 failed: %v", err)
	}

	if ip.Version != 4 {
		t.Errorf("Expected version 4, got %d", ip.Version)
	}
	if ip.TOS != 0x10 {
		t.Errorf("Expected TOS 0x10, got 0x%02x", ip.TOS)
	}
	if ip.Protocol != 17 {
		t.Errorf("Expected protocol 17, got %d", ip.Protocol)
	}
	if ip.TTL != 64 {
		t.Errorf("Expected TTL 64, got %d", ip.TTL)
	}
	if ip.ID != 0x1234 {
		t.Errorf("Expected ID 0x1234, got 0x%04x", ip.ID)
	}
	if !ip.DF {
		t.Error("Expected DF flag set")
	}
	if ip.IsFragment() {
		t.Error("Packet should not be a fragment")
	}
	if ip.TotalLen != 28 {
		t.Errorf("Expected TotalLen 28, got %d", ip.TotalLen)
	}
	if want := netip.MustParseAddr("192.168.1.1"); ip.SrcIP != want {
		t.Errorf("Expected SrcIP %v, got %v", want, ip.SrcIP)
	}
	if want := netip.MustParseAddr("192.168.1.2"); ip.DstIP != want {
		t.Errorf("Expected DstIP %v, got %v", want, ip.DstIP)
	}
	if len(payload) != 4 {
		t.Errorf("Expected payload length 4, got %d", len(payload))
	}
}

// TestDecodeIPv4AgainstXNet cross-checks the hand-rolled decoder against
// the golang.org/x/net/ipv4 header parser.
func TestDecodeIPv4AgainstXNet(t *testing.T) {
	data := []byte{
		0x45, 0xB8, 0x05, 0xDC,
		0xAB, 0xCD, 0x20, 0x64, // MF set, offset 100
		0x01, 0x06, 0xBE, 0xEF,
		10, 0, 0, 1,
		10, 0, 0, 2,
	}

	ip, _, err := decodeIPv4(data)
	if err != nil {
		t.Fatalf("decodeIPv4 failed: %v", err)
	}
	ref, err := ipv4.ParseHeader(data)
	if err != nil {
		t.Fatalf("x/net ParseHeader failed: %v", err)
	}

	if int(ip.TOS) != ref.TOS {
		t.Errorf("TOS mismatch: %d vs %d", ip.TOS, ref.TOS)
	}
	if int(ip.TotalLen) != ref.TotalLen {
		t.Errorf("TotalLen mismatch: %d vs %d", ip.TotalLen, ref.TotalLen)
	}
	if int(ip.ID) != ref.ID {
		t.Errorf("ID mismatch: %d vs %d", ip.ID, ref.ID)
	}
	if int(ip.TTL) != ref.TTL {
		t.Errorf("TTL mismatch: %d vs %d", ip.TTL, ref.TTL)
	}
	if int(ip.Protocol) != ref.Protocol {
		t.Errorf("Protocol mismatch: %d vs %d", ip.Protocol, ref.Protocol)
	}
	if int(ip.FragOff) != ref.FragOff {
		t.Errorf("FragOff mismatch: %d vs %d", ip.FragOff, ref.FragOff)
	}
	if ip.MF != (ref.Flags&ipv4.MoreFragments != 0) {
		t.Errorf("MF mismatch: %v vs %v", ip.MF, ref.Flags)
	}
	if ip.SrcIP.String() != ref.Src.String() {
		t.Errorf("SrcIP mismatch: %v vs %v", ip.SrcIP, ref.Src)
	}
	if ip.DstIP.String() != ref.Dst.String() {
		t.Errorf("DstIP mismatch: %v vs %v", ip.DstIP, ref.Dst)
	}
	if !ip.IsFragment() {
		t.Error("MF-flagged packet should report as fragment")
	}
}

func TestDecodeIPv6Basic(t *testing.T) {
	data := make([]byte, 40+4)

	// Version 6, Traffic Class 0x12, Flow Label 0xABCDE
	data[0] = 0x61
	data[1] = 0x2A
	data[2] = 0xBC
	data[3] = 0xDE

	// Payload Length
	data[4], data[5] = 0x00, 0x04

	// Next Header: UDP
	data[6] = 17

	// Hop Limit
	data[7] = 64

	copy(data[8:24], []byte{
		0x20, 0x01, 0x0d, 0xb8, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	})
	copy(data[24:40], []byte{
		0x20, 0x01, 0x0d, 0xb8, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
	})

	data[40], data[41], data[42], data[43] = 0x01, 0x02, 0x03, 0x04

	ip, payload, err := decodeIPv6(data)
	if err != nil {
		t.Fatalf("decodeIPv6 failed: %v", err)
	}
	if ip.Version != 6 {
		t.Errorf("Expected version 6, got %d", ip.Version)
	}
	if ip.TOS != 0x12 {
		t.Errorf("Expected traffic class 0x12, got 0x%02x", ip.TOS)
	}
	if ip.FlowLabel != 0xABCDE {
		t.Errorf("Expected flow label 0xABCDE, got 0x%05x", ip.FlowLabel)
	}
	if ip.Protocol != 17 {
		t.Errorf("Expected next header 17, got %d", ip.Protocol)
	}
	if ip.TTL != 64 {
		t.Errorf("Expected hop limit 64, got %d", ip.TTL)
	}
	if want := netip.MustParseAddr("2001:db8::1"); ip.SrcIP != want {
		t.Errorf("Expected SrcIP %v, got %v", want, ip.SrcIP)
	}
	if len(payload) != 4 {
		t.Errorf("Expected payload length 4, got %d", len(payload))
	}
}

func TestDecodeIPTooShort(t *testing.T) {
	if _, _, err := decodeIP([]byte{}); err == nil {
		t.Error("empty input should fail")
	}
	if _, _, err := decodeIPv4(make([]byte, 19)); err == nil {
		t.Error("19-byte IPv4 header should fail")
	}
	if _, _, err := decodeIPv6(make([]byte, 39)); err == nil {
		t.Error("39-byte IPv6 header should fail")
	}
}

func TestDecodeIPBadVersion(t *testing.T) {
	data := make([]byte, 20)
	data[0] = 0x50 // version 5
	if _, _, err := decodeIP(data); err == nil {
		t.Error("version 5 should be rejected")
	}
}
