package osmpbf

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
)

// parallelQueueCapacity bounds the parallel driver's blob submission queue;
// a full queue blocks the producer (natural backpressure).
const parallelQueueCapacity = 1024

// ParallelForEach decodes the file's blobs concurrently across tasks
// worker goroutines. For each blob it invokes f for every decoded element,
// then invokes f(Sentinel) once to mark the end of that blob. Submission
// blocks while the queue is full. The first error from f stops further
// submissions and is what ParallelForEach returns, after every worker has
// stopped. A worker whose f fails stops at that element and takes no more
// blobs; blobs still queued are processed only by workers that have not
// failed, so once every worker has failed the remaining queued blobs are
// not processed.
//
// Element order within one blob is preserved; no ordering guarantee is
// made across blobs. Callers that need canonical output order must feed a
// ParallelWriter, which re-imposes it.
func (r *Reader) ParallelForEach(tasks int, f func(Element) error) error {
	if tasks < 1 {
		tasks = 1
	}
	blobs, err := r.Blobs()
	if err != nil {
		return err
	}
	defer blobs.Close()

	work := make(chan BlobDescriptor, parallelQueueCapacity)
	eg, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < tasks; i++ {
		eg.Go(func() error {
			for desc := range work {
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
					if err := f(e); err != nil {
						return err
					}
				}
				if err := f(Sentinel); err != nil {
					return err
				}
			}
			return nil
		})
	}

	eg.Go(func() error {
		defer close(work)
		for {
			desc, err := blobs.Next()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			select {
			case work <- desc:
			case <-ctx.Done():
				return nil
			}
		}
	})

	return eg.Wait()
}

// ParallelBlobIterator is a thread-safe cursor over a file's blob
// descriptors, suitable for several worker goroutines to share as a common
// work source in a fork-join aggregation.
type ParallelBlobIterator struct {
	mu sync.Mutex
	it *BlobIterator
}

// Next returns the next descriptor, or io.EOF when exhausted. Safe for
// concurrent use.
func (p *ParallelBlobIterator) Next() (BlobDescriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.it.Next()
}

// Close releases the iterator's file handle.
func (p *ParallelBlobIterator) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.it.Close()
}

// ParallelBlobs returns a parallelisable blob iterator with the header
// already skipped, for consumers that fork work across goroutines
// themselves (for example CalculateBoundingBox).
func (r *Reader) ParallelBlobs() (*ParallelBlobIterator, error) {
	it, err := r.Blobs()
	if err != nil {
		return nil, err
	}
	if _, err := it.Next(); err != nil {
		it.Close()
		return nil, err
	}
	return &ParallelBlobIterator{it: it}, nil
}
