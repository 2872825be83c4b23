package osmpbf

import (
	"context"
	"sort"
	"sync"

	"github.com/google/renameio"
	"golang.org/x/sync/errgroup"
)

// defaultEncoders is the encode stage's worker count (E in spec terms).
const defaultEncoders = 4

type appendRequest struct {
	element Element
	reply   chan error
}

type encodeTask struct {
	index    int
	elements []Element
}

type writeTask struct {
	index  int
	header []byte
	blob   []byte
}

// ParallelWriter is a three-stage pipeline (order -> encode -> write) that
// accepts elements in arbitrary order and produces a file whose blocks
// satisfy the canonical type-then-id order invariant, compressing blocks
// across a worker pool. The ordering stage enforces a lower bound on
// arriving elements, the first element of the most recently flushed block:
// one that arrives below it means orderingBufferSize was too small for the
// disorder in the input, and WriteElement (or Close) returns
// OrderLostError.
type ParallelWriter struct {
	orderingBufferSize int
	blockSize          int

	appendCh chan appendRequest
	poisoned chan struct{}

	mu       sync.Mutex
	fatalErr error

	f      *renameio.PendingFile
	eg     *errgroup.Group
	cancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// poison records err as the pipeline's fatal error and wakes any
// WriteElement call currently blocked trying to submit to the now-dead
// ordering stage.
func (pw *ParallelWriter) poison(err error) {
	pw.mu.Lock()
	if pw.fatalErr == nil {
		pw.fatalErr = err
	}
	pw.mu.Unlock()
	select {
	case <-pw.poisoned:
	default:
		close(pw.poisoned)
	}
}

// NewParallelWriter creates path (atomically on Close), writes info as the
// file's header block, and starts the order/encode/write stages.
// orderingBufferSize (B) is the hard upper bound on the ordering stage's
// sorting deque before a flush is forced; it should be at least
// readerTaskCount * blockSize * k for some small k, to make OrderLostError
// unreachable in practice.
func NewParallelWriter(path string, orderingBufferSize, blockSize int, info FileInfo, compression CompressionType) (*ParallelWriter, error) {
	if blockSize < 1 {
		blockSize = defaultBlockSize
	}
	if orderingBufferSize < blockSize {
		orderingBufferSize = blockSize
	}

	f, err := renameio.TempFile("", path)
	if err != nil {
		return nil, err
	}

	if info.RequiredFeatures == nil {
		info.RequiredFeatures = defaultRequiredFeatures(info)
	}
	if info.OptionalFeatures == nil {
		info.OptionalFeatures = defaultOptionalFeatures()
	}
	header, blob, err := encodeHeaderBlob(info)
	if err != nil {
		f.Cleanup()
		return nil, err
	}
	if err := writeFramedBlob(f, header, blob); err != nil {
		f.Cleanup()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	eg, ctx := errgroup.WithContext(ctx)

	pw := &ParallelWriter{
		orderingBufferSize: orderingBufferSize,
		blockSize:          blockSize,
		appendCh:           make(chan appendRequest),
		poisoned:           make(chan struct{}),
		f:                  f,
		eg:                 eg,
		cancel:             cancel,
	}

	encodeCh := make(chan encodeTask, defaultEncoders*2)
	writeCh := make(chan writeTask, defaultEncoders*2)

	eg.Go(func() error {
		return pw.runOrderStage(ctx, encodeCh)
	})

	var encoders sync.WaitGroup
	encoders.Add(defaultEncoders)
	for i := 0; i < defaultEncoders; i++ {
		eg.Go(func() error {
			defer encoders.Done()
			return runEncodeStage(ctx, encodeCh, writeCh, compression)
		})
	}
	go func() {
		encoders.Wait()
		close(writeCh)
	}()

	eg.Go(func() error {
		return runWriteStage(ctx, f, writeCh)
	})

	return pw, nil
}

// runOrderStage owns the sorting buffer, current_min_element lower bound,
// and next file-block index: the reference design's thread-local state,
// confined here to a single goroutine reading appendCh.
func (pw *ParallelWriter) runOrderStage(ctx context.Context, encodeCh chan<- encodeTask) error {
	defer close(encodeCh)

	var (
		buffer     []Element
		haveMin    bool
		lowerBound Element
		nextIndex  = 1
	)

	submit := func() error {
		sort.SliceStable(buffer, func(i, j int) bool { return buffer[i].Less(buffer[j]) })
		n := pw.blockSize
		if n > len(buffer) {
			n = len(buffer)
		}
		kind := buffer[0].Kind
		for i := 1; i < n; i++ {
			if buffer[i].Kind != kind {
				n = i
				break
			}
		}
		chunk := append([]Element(nil), buffer[:n]...)
		buffer = buffer[n:]

		lowerBound = chunk[0]
		haveMin = true

		select {
		case encodeCh <- encodeTask{index: nextIndex, elements: chunk}:
			nextIndex++
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	drainFully := func() error {
		for len(buffer) > 0 {
			if err := submit(); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		select {
		case req, ok := <-pw.appendCh:
			if !ok {
				return drainFully()
			}
			if haveMin && req.element.Less(lowerBound) {
				err := NewOrderLostError("element arrived below the ordering lower bound")
				req.reply <- err
				pw.poison(err)
				return err
			}
			buffer = append(buffer, req.element)
			req.reply <- nil

			if len(buffer) > pw.orderingBufferSize {
				if err := submit(); err != nil {
					pw.poison(err)
					return err
				}
			}
		case <-ctx.Done():
			pw.poison(ctx.Err())
			return ctx.Err()
		}
	}
}

func runEncodeStage(ctx context.Context, encodeCh <-chan encodeTask, writeCh chan<- writeTask, compression CompressionType) error {
	for {
		select {
		case task, ok := <-encodeCh:
			if !ok {
				return nil
			}
			header, blob, err := encodeDataBlob(task.elements, compression)
			if err != nil {
				return err
			}
			select {
			case writeCh <- writeTask{index: task.index, header: header, blob: blob}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func runWriteStage(ctx context.Context, f *renameio.PendingFile, writeCh <-chan writeTask) error {
	pending := make(map[int]writeTask)
	nextToWrite := 1
	for {
		select {
		case task, ok := <-writeCh:
			if !ok {
				return nil
			}
			pending[task.index] = task
			for {
				t, ok := pending[nextToWrite]
				if !ok {
					break
				}
				if err := writeFramedBlob(f, t.header, t.blob); err != nil {
					return err
				}
				delete(pending, nextToWrite)
				nextToWrite++
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// WriteElement appends e to the ordering stage, blocking until it has been
// accepted (or rejected with OrderLostError). If the pipeline has already
// failed, it returns the recorded fatal error immediately instead of
// blocking on a dead ordering stage.
func (pw *ParallelWriter) WriteElement(e Element) error {
	reply := make(chan error, 1)
	select {
	case pw.appendCh <- appendRequest{element: e, reply: reply}:
	case <-pw.poisoned:
		pw.mu.Lock()
		err := pw.fatalErr
		pw.mu.Unlock()
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-pw.poisoned:
		pw.mu.Lock()
		err := pw.fatalErr
		pw.mu.Unlock()
		return err
	}
}

// WriteElements writes each element of es in order via WriteElement.
func (pw *ParallelWriter) WriteElements(es []Element) error {
	for _, e := range es {
		if err := pw.WriteElement(e); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the ordering buffer, shuts down the ordering, encode, and
// write stages in that order (complete-pending throughout), and atomically
// replaces the destination path. It returns the first stage error, if any.
func (pw *ParallelWriter) Close() error {
	pw.closeOnce.Do(func() {
		close(pw.appendCh)
		err := pw.eg.Wait()
		pw.cancel()
		if err != nil {
			pw.f.Cleanup()
			pw.closeErr = err
			return
		}
		pw.closeErr = pw.f.CloseAtomicallyReplace()
	})
	return pw.closeErr
}
