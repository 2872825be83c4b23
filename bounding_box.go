package osmpbf

import (
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CalculateBoundingBox computes the bounding box enclosing every node in
// the file at path, decoding blobs across tasks worker goroutines via
// ParallelBlobs. Ways and relations do not themselves carry coordinates and
// do not contribute.
func CalculateBoundingBox(path string, tasks int) (BoundingBox, error) {
	if tasks < 1 {
		tasks = 1
	}
	r, err := NewReader(path)
	if err != nil {
		return BoundingBox{}, err
	}

	blobs, err := r.ParallelBlobs()
	if err != nil {
		return BoundingBox{}, err
	}
	defer blobs.Close()

	var (
		mu  sync.Mutex
		box BoundingBox
		set bool
	)
	eg := new(errgroup.Group)

	for i := 0; i < tasks; i++ {
		eg.Go(func() error {
			var local BoundingBox
			localSet := false
			for {
				desc, err := blobs.Next()
				if err != nil {
					if err == io.EOF {
						break
					}
					return err
				}
				if desc.Type != BlockData {
					continue
				}
				body, err := readBlobBody(desc)
				if err != nil {
					return err
				}
				elements, err := decodeDataBlob(body)
				if err != nil {
					return err
				}
				for _, e := range elements {
					if e.Kind != KindNode {
						continue
					}
					if !localSet {
						local = BoundingBox{
							Left:   e.Node.Coord.Lon,
							Right:  e.Node.Coord.Lon,
							Bottom: e.Node.Coord.Lat,
							Top:    e.Node.Coord.Lat,
						}
						localSet = true
						continue
					}
					local = local.ExpandPoint(e.Node.Coord)
				}
			}

			if !localSet {
				return nil
			}
			mu.Lock()
			if !set {
				box = local
				set = true
			} else {
				box = box.ExpandBox(local)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return BoundingBox{}, err
	}
	return box, nil
}
