package blobio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/navio-go/osmpbf/internal/model"
	"github.com/navio-go/osmpbf/internal/pbfproto"
)

func TestEncodeDecodeBlobUncompressed(t *testing.T) {
	body := []byte("primitive block bytes")
	_, blobBytes, err := EncodeBlob(model.BlockData, body, model.Uncompressed)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBlob(blobBytes)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("got %q, want %q", got, body)
	}
}

func TestEncodeDecodeBlobZlib(t *testing.T) {
	body := bytes.Repeat([]byte("abcdefgh"), 100)
	_, blobBytes, err := EncodeBlob(model.BlockData, body, model.Zlib)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBlob(blobBytes)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("zlib round trip mismatch, got %d bytes want %d", len(got), len(body))
	}
}

func TestDecodeBlobRawSizeMismatch(t *testing.T) {
	body := bytes.Repeat([]byte("x"), 50)
	_, blobBytes, err := EncodeBlob(model.BlockData, body, model.Zlib)
	if err != nil {
		t.Fatal(err)
	}
	blob, err := pbfproto.UnmarshalBlob(blobBytes)
	if err != nil {
		t.Fatal(err)
	}
	blob.RawSize = int32(len(body) + 1)
	tampered := blob.Marshal()
	if _, err := DecodeBlob(tampered); err == nil {
		t.Fatal("expected Malformed error for raw_size mismatch")
	}
}

func writeFramedBlob(t *testing.T, w *os.File, blockType model.BlockType, body []byte) {
	t.Helper()
	headerBytes, blobBytes, err := EncodeBlob(blockType, body, model.Uncompressed)
	if err != nil {
		t.Fatal(err)
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(headerBytes)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(headerBytes); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(blobBytes); err != nil {
		t.Fatal(err)
	}
}

func TestStreamSequentialScan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.osm.pbf")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	writeFramedBlob(t, f, model.BlockHeader, []byte("header-bytes"))
	writeFramedBlob(t, f, model.BlockData, []byte("data-bytes-1"))
	writeFramedBlob(t, f, model.BlockData, []byte("data-bytes-2"))
	f.Close()

	s, err := OpenStream(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var descs []model.BlobDescriptor
	for {
		d, err := s.Next()
		if err != nil {
			break
		}
		descs = append(descs, d)
	}
	if len(descs) != 3 {
		t.Fatalf("got %d descriptors, want 3", len(descs))
	}
	if descs[0].Type != model.BlockHeader {
		t.Errorf("first descriptor type = %v, want header", descs[0].Type)
	}
	if descs[1].Index != 1 || descs[2].Index != 2 {
		t.Errorf("indices = %d, %d", descs[1].Index, descs[2].Index)
	}

	body, err := ReadBodyAt(descs[1])
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBlob(body)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "data-bytes-1" {
		t.Errorf("got %q", got)
	}
}
