package crc

import (
	"testing"
)

// refCalculate is an independent bit-by-bit implementation used to
// validate the table-driven path.
func refCalculate(poly, mask byte, data []byte, init byte) byte {
	crc := init
	for _, b := range data {
		tmp := b ^ (crc & mask)
		for j := 0; j < 8; j++ {
			if tmp&1 != 0 {
				tmp = (tmp >> 1) ^ poly
			} else {
				tmp >>= 1
			}
		}
		crc = tmp
	}
	return crc
}

func TestCalculateMatchesBitwise(t *testing.T) {
	data := []byte{0x45, 0x00, 0x00, 0x1C, 0x12, 0x34, 0xFF, 0x01, 0x80, 0x7F}

	cases := []struct {
		name string
		typ  Type
		poly byte
		mask byte
		init byte
	}{
		{"crc3", CRC3, poly3, 0x07, Init3},
		{"crc7", CRC7, poly7, 0x7F, Init7},
		{"crc8", CRC8, poly8, 0xFF, Init8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Calculate(tc.typ, data, tc.init)
			want := refCalculate(tc.poly, tc.mask, data, tc.init)
			if got != want {
				t.Errorf("Calculate = 0x%02x, bitwise reference = 0x%02x", got, want)
			}
		})
	}
}

func TestCalculateChaining(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x42}

	for _, typ := range []Type{CRC3, CRC7, CRC8} {
		whole := Calculate(typ, data, InitValue(typ))
		part := Calculate(typ, data[:3], InitValue(typ))
		part = Calculate(typ, data[3:], part)
		if whole != part {
			t.Errorf("type %d: chained CRC 0x%02x != one-shot 0x%02x", typ, part, whole)
		}
	}
}

func TestCalculateEmpty(t *testing.T) {
	for _, typ := range []Type{CRC3, CRC7, CRC8} {
		if got := Calculate(typ, nil, InitValue(typ)); got != InitValue(typ) {
			t.Errorf("type %d: CRC over no data should keep init, got 0x%02x", typ, got)
		}
	}
}

func TestFlavoursDiffer(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	c3 := Calculate(CRC3, data, Init3)
	c7 := Calculate(CRC7, data, Init7)
	c8 := Calculate(CRC8, data, Init8)

	if c3 > 0x07 {
		t.Errorf("CRC-3 result 0x%02x exceeds 3 bits", c3)
	}
	if c7 > 0x7F {
		t.Errorf("CRC-7 result 0x%02x exceeds 7 bits", c7)
	}
	if c7 == c8 && c3 == c7 {
		t.Error("all three flavours agree, tables are suspect")
	}
}

func TestCalculateDetectsCorruption(t *testing.T) {
	data := []byte{0x45, 0x00, 0x00, 0x54, 0xA6, 0xF2}
	orig := Calculate(CRC8, data, Init8)

	corrupted := make([]byte, len(data))
	copy(corrupted, data)
	corrupted[2] ^= 0x10
	if Calculate(CRC8, corrupted, Init8) == orig {
		t.Error("single-bit corruption not reflected in CRC-8")
	}
}
