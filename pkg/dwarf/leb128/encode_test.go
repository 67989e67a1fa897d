package leb128

import "testing"

func TestAppendUnsignedRoundTrip(t *testing.T) {
	for _, x := range []uint64{0x00, 0x7f, 0x80, 0x8f, 0xffff, 0xfffffff7} {
		enc := AppendUnsigned(nil, x)
		out, n := DecodeUnsigned(append(enc, 0x1, 0x2, 0x3))
		t.Logf("input %x encoded % x", x, enc)
		if n != len(enc) {
			t.Errorf("encoding of %x: length %d, want %d", x, n, len(enc))
		}
		if out != x {
			t.Errorf("encoding of %x decoded to %x", x, out)
		}
	}
}

func TestAppendSignedRoundTrip(t *testing.T) {
	for _, x := range []int64{2, -2, 127, -127, 128, -128, 129, -129} {
		enc := AppendSigned(nil, x)
		out, n := DecodeSigned(append(enc, 0x1, 0x2, 0x3))
		t.Logf("input %x encoded % x", x, enc)
		if n != len(enc) {
			t.Errorf("encoding of %x: length %d, want %d", x, n, len(enc))
		}
		if out != x {
			t.Errorf("encoding of %x decoded to %x", x, out)
		}
	}
}

func TestAppendExtends(t *testing.T) {
	blk := AppendUnsigned([]byte{0x91}, 8)
	if len(blk) != 2 || blk[0] != 0x91 || blk[1] != 0x08 {
		t.Errorf("expected {91 08}, got % x", blk)
	}
	blk = AppendSigned([]byte{0x91}, -4)
	if len(blk) != 2 || blk[0] != 0x91 || blk[1] != 0x7c {
		t.Errorf("expected {91 7c}, got % x", blk)
	}
}
