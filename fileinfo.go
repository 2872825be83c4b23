package osmpbf

import "github.com/navio-go/osmpbf/internal/model"

// FileInfo is the parsed contents of a file's OSMHeader block.
type FileInfo = model.FileInfo

// BlobDescriptor locates one blob body within a file without having read
// it.
type BlobDescriptor = model.BlobDescriptor

// FileBlockMetadata carries a blob's type and index, independent of its
// payload.
type FileBlockMetadata = model.FileBlockMetadata

// OsmData is the decoded payload of one data blob.
type OsmData = model.OsmData

// FileBlock is a tagged union of {Header(metadata, FileInfo),
// Data(metadata, OsmData)}.
type FileBlock = model.FileBlock

// supportedRequiredFeatures is the reader's allow-list: a required feature
// outside this set fails construction with UnsupportedFeatureError.
var supportedRequiredFeatures = map[string]bool{
	"OsmSchema-V0.6":        true,
	"DenseNodes":            true,
	"HistoricalInformation": true,
	"Sort.Type_then_ID":     true,
}

// defaultRequiredFeatures is what Writer/ParallelWriter emit when the
// caller's FileInfo leaves RequiredFeatures unset: OsmSchema-V0.6 and
// DenseNodes, plus HistoricalInformation when FileInfo.HasHistory is set.
func defaultRequiredFeatures(info FileInfo) []string {
	out := []string{"OsmSchema-V0.6", "DenseNodes"}
	if info.HasHistory {
		out = append(out, "HistoricalInformation")
	}
	return out
}

// defaultOptionalFeatures is what Writer/ParallelWriter emit when the
// caller's FileInfo leaves OptionalFeatures unset.
func defaultOptionalFeatures() []string {
	return []string{"Sort.Type_then_ID"}
}
