package leb128

// AppendUnsigned appends the unsigned Little Endian Base 128 encoding
// of x to dst and returns the extended slice.
func AppendUnsigned(dst []byte, x uint64) []byte {
	for {
		b := byte(x & 0x7f)
		x >>= 7
		if x == 0 {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// AppendSigned appends the signed Little Endian Base 128 encoding of x
// to dst and returns the extended slice.
func AppendSigned(dst []byte, x int64) []byte {
	for {
		b := byte(x & 0x7f)
		x >>= 7
		if (x == 0 && b&0x40 == 0) || (x == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}
