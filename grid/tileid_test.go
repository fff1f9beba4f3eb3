package grid

import (
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		depth int
		face  int
		local int64
	}{
		{0, 0, 0},
		{1, 0, 0},
		{16, 19, 511},
		{MaxDepth, MaxFace, MaxLocal},
		{5, 31, 1 << 40},
	}
	for _, c := range cases {
		id, err := Encode(c.depth, c.face, c.local)
		if err != nil {
			t.Fatalf("encode(%d,%d,%d): unexpected error %v", c.depth, c.face, c.local, err)
		}
		depth, face, local, err := Decode(id)
		if err != nil {
			t.Fatalf("decode(%d): unexpected error %v", id, err)
		}
		if depth != c.depth || face != c.face || local != c.local {
			t.Fatalf("round trip mismatch: got (%d,%d,%d), want (%d,%d,%d)",
				depth, face, local, c.depth, c.face, c.local)
		}
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	cases := []struct {
		depth int
		face  int
		local int64
	}{
		{-1, 0, 0},
		{MaxDepth + 1, 0, 0},
		{0, -1, 0},
		{0, MaxFace + 1, 0},
		{0, 0, -1},
		{0, 0, MaxLocal + 1},
	}
	for _, c := range cases {
		if _, err := Encode(c.depth, c.face, c.local); !errors.Is(err, ErrFieldRange) {
			t.Fatalf("encode(%d,%d,%d): expected ErrFieldRange, got %v", c.depth, c.face, c.local, err)
		}
	}
}

func TestDecodeNegativeID(t *testing.T) {
	if _, _, _, err := Decode(TileID(-5)); !errors.Is(err, ErrFieldRange) {
		t.Fatalf("expected ErrFieldRange for negative id, got %v", err)
	}
}
