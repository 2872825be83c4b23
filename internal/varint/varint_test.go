package varint

import "testing"

func TestUvarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1, 1 << 63}
	for _, v := range cases {
		buf := AppendUvarint(nil, v)
		got, n, err := ReadUvarint(buf, 0)
		if err != nil {
			t.Fatalf("ReadUvarint(%d): %v", v, err)
		}
		if n != len(buf) {
			t.Errorf("ReadUvarint(%d) consumed %d bytes, want %d", v, n, len(buf))
		}
		if got != v {
			t.Errorf("ReadUvarint(%d) = %d", v, got)
		}
	}
}

func TestVarintRoundTrip(t *testing.T) {
	cases := []int64{0, -1, 1, -64, 64, -1 << 40, 1 << 40}
	for _, v := range cases {
		buf := AppendVarint(nil, v)
		got, n, err := ReadVarint(buf, 0)
		if err != nil {
			t.Fatalf("ReadVarint(%d): %v", v, err)
		}
		if n != len(buf) {
			t.Errorf("ReadVarint(%d) consumed %d bytes, want %d", v, n, len(buf))
		}
		if got != v {
			t.Errorf("ReadVarint(%d) = %d", v, got)
		}
	}
}

func TestReadUvarintTruncated(t *testing.T) {
	buf := []byte{0x80, 0x80}
	if _, _, err := ReadUvarint(buf, 0); err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestReadUvarintOverflow(t *testing.T) {
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 0xff
	}
	buf[9] = 0x02
	if _, _, err := ReadUvarint(buf, 0); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestZigZag(t *testing.T) {
	cases := []int64{0, -1, 1, -2, 2, 1 << 40, -(1 << 40)}
	for _, v := range cases {
		if got := ZigZagDecode(ZigZagEncode(v)); got != v {
			t.Errorf("zigzag round trip for %d got %d", v, got)
		}
	}
}
