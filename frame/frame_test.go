package frame

import (
	"bytes"
	"math/rand"
	"testing"
)

func makeTestData(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		codec   Codec
		shuffle Shuffle
		typeSz  int
		dataLen int
	}{
		{"lz4-bitshuffle-f32", LZ4, BitShuffle, 4, 10000},
		{"lz4-byteshuffle-f64", LZ4, ByteShuffle, 8, 10000},
		{"lz4-noshuffle", LZ4, NoShuffle, 4, 10000},
		{"lz4hc-bitshuffle", LZ4HC, BitShuffle, 4, 4096},
		{"zstd-bitshuffle", ZSTD, BitShuffle, 8, 8192},
		{"zlib-byteshuffle", ZLIB, ByteShuffle, 2, 5000},
		{"snappy-noshuffle", Snappy, NoShuffle, 1, 3000},
		{"odd-length-tail", LZ4, BitShuffle, 4, 10003},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := makeTestData(tt.dataLen)
			opts := Options{Codec: tt.codec, Level: 5, Shuffle: tt.shuffle, TypeSize: tt.typeSz}

			encoded, err := Compress(data, opts)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if len(encoded) < HeaderSize {
				t.Fatalf("encoded frame shorter than header: %d bytes", len(encoded))
			}

			decoded, err := Decompress(encoded)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(data, decoded) {
				t.Errorf("round trip mismatch")
			}
		})
	}
}

// TestCompressDecompressRoundTripIncompressible exercises the memcpy
// fallback: random data defeats every codec here, so Compress must store it
// verbatim (flagMemcpy) rather than fail or bloat the output.
func TestCompressDecompressRoundTripIncompressible(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	data := make([]byte, 8192)
	r.Read(data)

	for _, codec := range []Codec{LZ4, LZ4HC, ZLIB, ZSTD, Snappy} {
		t.Run(codec.String(), func(t *testing.T) {
			opts := Options{Codec: codec, Level: 5, Shuffle: NoShuffle, TypeSize: 1}
			encoded, err := Compress(data, opts)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			decoded, err := Decompress(encoded)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(data, decoded) {
				t.Errorf("round trip mismatch on incompressible input")
			}
		})
	}
}

func TestDecompressRejectsTruncatedHeader(t *testing.T) {
	if _, err := Decompress([]byte{1, 2, 3}); err != ErrInvalidHeader {
		t.Errorf("got err=%v, want ErrInvalidHeader", err)
	}
}

func TestDecompressRejectsWrongVersion(t *testing.T) {
	buf := make([]byte, HeaderSize)
	buf[0] = FormatVersion + 1
	if _, err := Decompress(buf); err == nil {
		t.Error("expected an error for wrong version")
	}
}

func TestDecompressRejectsUnknownCodec(t *testing.T) {
	data := makeTestData(256)
	encoded, err := Compress(data, Options{Codec: LZ4, Level: 5, Shuffle: NoShuffle, TypeSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	encoded[1] = 0xFF // codec byte
	if _, err := Decompress(encoded); err == nil {
		t.Error("expected an error for an unknown codec id")
	}
}

func TestShuffleBytesRoundTrip(t *testing.T) {
	data := makeTestData(997)
	for _, typeSize := range []int{1, 2, 4, 8, 16} {
		shuffled := make([]byte, len(data))
		restored := make([]byte, len(data))
		shuffleBytes(shuffled, data, typeSize)
		unshuffleBytes(restored, shuffled, typeSize)
		if !bytes.Equal(data, restored) {
			t.Errorf("typeSize=%d: shuffle/unshuffle round trip failed", typeSize)
		}
	}
}

func TestListCodecsIncludesBuiltins(t *testing.T) {
	ids := ListCodecs()
	want := map[Codec]bool{LZ4: true, LZ4HC: true, ZSTD: true, ZLIB: true, Snappy: true}
	for _, id := range ids {
		delete(want, id)
	}
	if len(want) != 0 {
		t.Errorf("missing builtin codecs: %v", want)
	}
}
