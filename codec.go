package osmpbf

import (
	"encoding/binary"
	"io"

	"github.com/navio-go/osmpbf/internal/blobio"
	"github.com/navio-go/osmpbf/internal/blockio"
	"github.com/navio-go/osmpbf/internal/model"
	"github.com/navio-go/osmpbf/internal/pbfproto"
)

const nanoDegreeScale = 1e9

func fileInfoToHeaderBlock(info FileInfo) *pbfproto.HeaderBlock {
	h := &pbfproto.HeaderBlock{
		RequiredFeatures: info.RequiredFeatures,
		OptionalFeatures: info.OptionalFeatures,
	}
	if info.BoundingBox != nil {
		h.BBox = &pbfproto.HeaderBBox{
			Left:   int64(info.BoundingBox.Left * nanoDegreeScale),
			Right:  int64(info.BoundingBox.Right * nanoDegreeScale),
			Top:    int64(info.BoundingBox.Top * nanoDegreeScale),
			Bottom: int64(info.BoundingBox.Bottom * nanoDegreeScale),
		}
	}
	if info.WritingProgram != "" {
		h.WritingProgram = info.WritingProgram
		h.HasWritingProgram = true
	}
	if info.Source != "" {
		h.Source = info.Source
		h.HasSource = true
	}
	if info.HasOsmosisReplicationTimestamp {
		h.OsmosisReplicationTimestamp = info.OsmosisReplicationTimestamp
		h.HasOsmosisReplicationTimestamp = true
	}
	if info.HasOsmosisReplicationSequence {
		h.OsmosisReplicationSequenceNumber = info.OsmosisReplicationSequence
		h.HasOsmosisReplicationSequenceNumber = true
	}
	if info.OsmosisReplicationBaseURL != "" {
		h.OsmosisReplicationBaseURL = info.OsmosisReplicationBaseURL
		h.HasOsmosisReplicationBaseURL = true
	}
	return h
}

func headerBlockToFileInfo(h *pbfproto.HeaderBlock) FileInfo {
	info := FileInfo{
		RequiredFeatures: h.RequiredFeatures,
		OptionalFeatures: h.OptionalFeatures,
		WritingProgram:   h.WritingProgram,
		Source:           h.Source,
	}
	if h.BBox != nil {
		info.BoundingBox = &BoundingBox{
			Left:   float64(h.BBox.Left) / nanoDegreeScale,
			Right:  float64(h.BBox.Right) / nanoDegreeScale,
			Top:    float64(h.BBox.Top) / nanoDegreeScale,
			Bottom: float64(h.BBox.Bottom) / nanoDegreeScale,
		}
	}
	if h.HasOsmosisReplicationTimestamp {
		info.OsmosisReplicationTimestamp = h.OsmosisReplicationTimestamp
		info.HasOsmosisReplicationTimestamp = true
	}
	if h.HasOsmosisReplicationSequenceNumber {
		info.OsmosisReplicationSequence = h.OsmosisReplicationSequenceNumber
		info.HasOsmosisReplicationSequence = true
	}
	info.OsmosisReplicationBaseURL = h.OsmosisReplicationBaseURL
	for _, f := range h.RequiredFeatures {
		if f == "HistoricalInformation" {
			info.HasHistory = true
		}
	}
	return info
}

// encodeHeaderBlob encodes info as the file's sole OSMHeader blob.
func encodeHeaderBlob(info FileInfo) (headerBytes, blobBytes []byte, err error) {
	body := fileInfoToHeaderBlock(info).Marshal()
	return blobio.EncodeBlob(model.BlockHeader, body, model.Zlib)
}

// decodeHeaderBlob decodes a file's OSMHeader blob body into a FileInfo.
func decodeHeaderBlob(body []byte) (FileInfo, error) {
	h, err := pbfproto.UnmarshalHeaderBlock(body)
	if err != nil {
		return FileInfo{}, err
	}
	return headerBlockToFileInfo(h), nil
}

// encodeDataBlob implements the block codec's encode step (spec §4.7):
// compose elements (which must share one kind) into a PrimitiveBlock, then
// wrap it in the compressed blob envelope.
func encodeDataBlob(elements []Element, compression CompressionType) (headerBytes, blobBytes []byte, err error) {
	pb, err := blockio.Compose(elements)
	if err != nil {
		return nil, nil, err
	}
	body := pb.Marshal()
	return blobio.EncodeBlob(model.BlockData, body, compression)
}

// decodeDataBlob implements the block codec's decode step: unwrap the blob
// envelope, then decompose the PrimitiveBlock into elements.
func decodeDataBlob(body []byte) ([]Element, error) {
	pb, err := pbfproto.UnmarshalPrimitiveBlock(body)
	if err != nil {
		return nil, err
	}
	return blockio.Decompose(pb)
}

// writeFramedBlob writes one blob's on-disk framing to w: a 4-byte
// big-endian length of headerBytes, headerBytes itself, then blobBytes.
func writeFramedBlob(w io.Writer, headerBytes, blobBytes []byte) error {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(headerBytes)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := w.Write(headerBytes); err != nil {
		return err
	}
	_, err := w.Write(blobBytes)
	return err
}
