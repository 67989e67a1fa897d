package leb128

// DecodeUnsigned decodes the unsigned Little Endian Base 128 number at
// the start of data and reports how many bytes it occupied. Location
// blocks and member offsets carry their operand this way, after a one
// byte opcode. Empty or truncated input decodes to zero with a length
// of zero.
func DecodeUnsigned(data []byte) (uint64, int) {
	var (
		result uint64
		shift  uint
	)
	for i, b := range data {
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i + 1
		}
		shift += 7
	}
	return 0, 0
}

// DecodeSigned decodes the signed Little Endian Base 128 number at the
// start of data and reports how many bytes it occupied. Empty or
// truncated input decodes to zero with a length of zero.
func DecodeSigned(data []byte) (int64, int) {
	var (
		result int64
		shift  uint
	)
	for i, b := range data {
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			if shift < 64 && b&0x40 != 0 {
				result |= -1 << shift
			}
			return result, i + 1
		}
	}
	return 0, 0
}
