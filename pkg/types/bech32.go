package types

import (
	"fmt"
	"strings"
)

// Bech32 charset used for encoding (BIP-173).
const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Encoding selects the checksum constant of a bech32 string.
type Encoding int

const (
	// Bech32 is the BIP-173 encoding.
	Bech32 Encoding = iota + 1
	// Bech32m is the BIP-350 encoding used for chain addresses.
	Bech32m
)

// Checksum constants XOR-ed into the polymod.
const (
	bech32Const  = 1
	bech32mConst = 0x2bc830a3
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case Bech32:
		return "bech32"
	case Bech32m:
		return "bech32m"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

func (e Encoding) constant() uint32 {
	if e == Bech32m {
		return bech32mConst
	}
	return bech32Const
}

// bech32CharsetRev maps bech32 characters to their 5-bit values. -1 = invalid.
var bech32CharsetRev [128]int8

func init() {
	for i := range bech32CharsetRev {
		bech32CharsetRev[i] = -1
	}
	for i, c := range bech32Charset {
		bech32CharsetRev[c] = int8(i)
	}
}

// Bech32Encode encodes a human-readable part and data bytes into a bech32 string.
func Bech32Encode(hrp string, data []byte) (string, error) {
	return encode(Bech32, hrp, data)
}

// Bech32mEncode encodes a human-readable part and data bytes into a bech32m string.
func Bech32mEncode(hrp string, data []byte) (string, error) {
	return encode(Bech32m, hrp, data)
}

// Bech32Decode decodes a bech32 string into the human-readable part and data bytes.
// Strings carrying a bech32m checksum are rejected.
func Bech32Decode(s string) (string, []byte, error) {
	return decodeAs(Bech32, s)
}

// Bech32mDecode decodes a bech32m string into the human-readable part and data bytes.
// Strings carrying a plain bech32 checksum are rejected.
func Bech32mDecode(s string) (string, []byte, error) {
	return decodeAs(Bech32m, s)
}

func decodeAs(want Encoding, s string) (string, []byte, error) {
	enc, hrp, data, err := Decode(s)
	if err != nil {
		return "", nil, err
	}
	if enc != want {
		return "", nil, fmt.Errorf("%s: got %s checksum", want, enc)
	}
	return hrp, data, nil
}

func encode(enc Encoding, hrp string, data []byte) (string, error) {
	if len(hrp) == 0 {
		return "", fmt.Errorf("%s: empty HRP", enc)
	}
	for _, c := range hrp {
		if c < 33 || c > 126 {
			return "", fmt.Errorf("%s: invalid HRP character %q", enc, c)
		}
		if c >= 'A' && c <= 'Z' {
			return "", fmt.Errorf("%s: HRP must be lowercase", enc)
		}
	}

	// Convert 8-bit data to 5-bit groups.
	conv, err := convertBits(data, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("%s: convert bits: %w", enc, err)
	}

	chk := createChecksum(enc, hrp, conv)

	// Build result: hrp + "1" + data + checksum
	var sb strings.Builder
	sb.Grow(len(hrp) + 1 + len(conv) + 6)
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, b := range conv {
		sb.WriteByte(bech32Charset[b])
	}
	for _, b := range chk {
		sb.WriteByte(bech32Charset[b])
	}
	return sb.String(), nil
}

// Decode decodes a bech32 or bech32m string and reports which checksum it carried.
func Decode(s string) (Encoding, string, []byte, error) {
	if len(s) == 0 {
		return 0, "", nil, fmt.Errorf("bech32: empty string")
	}

	// Reject mixed case.
	hasUpper := false
	hasLower := false
	for _, c := range s {
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		}
		if c >= 'a' && c <= 'z' {
			hasLower = true
		}
	}
	if hasUpper && hasLower {
		return 0, "", nil, fmt.Errorf("bech32: mixed case")
	}

	// Work in lowercase.
	s = strings.ToLower(s)

	// Find the last '1' separator.
	sepIdx := strings.LastIndex(s, "1")
	if sepIdx < 1 {
		return 0, "", nil, fmt.Errorf("bech32: missing separator")
	}
	if sepIdx+7 > len(s) {
		return 0, "", nil, fmt.Errorf("bech32: too short")
	}

	hrp := s[:sepIdx]
	dataStr := s[sepIdx+1:]

	data5 := make([]byte, len(dataStr))
	for i, c := range dataStr {
		if c > 127 {
			return 0, "", nil, fmt.Errorf("bech32: invalid character %q", c)
		}
		val := bech32CharsetRev[c]
		if val < 0 {
			return 0, "", nil, fmt.Errorf("bech32: invalid character %q", c)
		}
		data5[i] = byte(val)
	}

	var enc Encoding
	switch polymod(append(hrpExpand(hrp), data5...)) {
	case bech32Const:
		enc = Bech32
	case bech32mConst:
		enc = Bech32m
	default:
		return 0, "", nil, fmt.Errorf("bech32: invalid checksum")
	}

	// Strip checksum from data.
	data5 = data5[:len(data5)-6]

	data8, err := convertBits(data5, 5, 8, false)
	if err != nil {
		return 0, "", nil, fmt.Errorf("%s: convert bits: %w", enc, err)
	}

	return enc, hrp, data8, nil
}

// polymod computes the bech32 polynomial modulus.
func polymod(values []byte) uint32 {
	gen := [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

// hrpExpand expands the HRP for checksum computation.
func hrpExpand(hrp string) []byte {
	ret := make([]byte, 0, len(hrp)*2+1)
	for _, c := range hrp {
		ret = append(ret, byte(c>>5))
	}
	ret = append(ret, 0)
	for _, c := range hrp {
		ret = append(ret, byte(c&31))
	}
	return ret
}

// createChecksum creates the 6-symbol checksum for the given HRP and data.
func createChecksum(enc Encoding, hrp string, data []byte) []byte {
	values := append(hrpExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	mod := polymod(values) ^ enc.constant()
	ret := make([]byte, 6)
	for i := 0; i < 6; i++ {
		ret[i] = byte((mod >> uint(5*(5-i))) & 31)
	}
	return ret
}

// convertBits converts between bit groups.
// fromBits/toBits are the source/destination group sizes (e.g. 8 and 5).
// pad controls whether incomplete groups are zero-padded.
func convertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	acc := uint32(0)
	bits := uint(0)
	maxv := uint32((1 << toBits) - 1)
	var ret []byte

	for _, b := range data {
		if uint32(b)>>fromBits != 0 {
			return nil, fmt.Errorf("invalid data byte: %d", b)
		}
		acc = acc<<fromBits | uint32(b)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte((acc>>bits)&maxv))
		}
	}

	if pad {
		if bits > 0 {
			ret = append(ret, byte((acc<<(toBits-bits))&maxv))
		}
	} else {
		if bits >= fromBits {
			return nil, fmt.Errorf("non-zero padding")
		}
		if (acc<<(toBits-bits))&maxv != 0 {
			return nil, fmt.Errorf("non-zero padding")
		}
	}

	return ret, nil
}
