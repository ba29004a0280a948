package braille

import (
	"fmt"
	"sync"
	"time"
)

// RenderOutcome is the result of one background conversion
type RenderOutcome struct {
	Document Document
	Params   Params
	Source   Source
	Duration time.Duration
	Err      error
}

// AsyncWorkerOptions configures the render worker.
type AsyncWorkerOptions struct {
	Workers int // number of goroutines to use; defaults to 1
	Queue   int // size of the request/result buffers; defaults to 1 (latest wins)
}

type renderRequest struct {
	src    Source
	params Params
}

// AsyncRenderWorker converts on background goroutines so interactive callers
// stay responsive while the user drags a slider or types. When the queue is
// full, newer requests replace older ones so the latest input always wins.
type AsyncRenderWorker struct {
	conv          *Converter
	reqCh         chan renderRequest
	resCh         chan RenderOutcome
	stopCh        chan struct{}
	wg            sync.WaitGroup
	mu            sync.Mutex
	lastRequested renderRequest
	lastResult    RenderOutcome
	hasResult     bool
	closeOnce     sync.Once
}

// NewAsyncRenderWorker starts a worker converting with conv. A nil conv uses
// DefaultConverter.
func NewAsyncRenderWorker(conv *Converter, opts AsyncWorkerOptions) *AsyncRenderWorker {
	if conv == nil {
		conv = DefaultConverter
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	queue := opts.Queue
	if queue <= 0 {
		queue = 1
	}

	w := &AsyncRenderWorker{
		conv:   conv,
		reqCh:  make(chan renderRequest, queue),
		resCh:  make(chan RenderOutcome, queue),
		stopCh: make(chan struct{}),
	}

	for range workers {
		w.wg.Add(1)
		go w.loop()
	}

	return w
}

// Close stops all worker goroutines. It is safe to call more than once.
func (w *AsyncRenderWorker) Close() {
	w.closeOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
	})
}

// Schedule enqueues a conversion. If an identical request is already the most
// recent, it is skipped. When the queue is full the oldest pending request is
// dropped to keep the pipeline current.
func (w *AsyncRenderWorker) Schedule(src Source, p Params) {
	req := renderRequest{src: src, params: p}

	w.mu.Lock()
	if req == w.lastRequested {
		w.mu.Unlock()
		return
	}
	w.lastRequested = req
	w.mu.Unlock()

	for {
		select {
		case w.reqCh <- req:
			return
		default:
		}
		select {
		case <-w.reqCh:
		default:
		}
	}
}

// TryLatest returns the newest completed conversion, if any. It drains the
// result buffer to always surface the most recent output.
func (w *AsyncRenderWorker) TryLatest() (RenderOutcome, bool) {
	for {
		select {
		case res := <-w.resCh:
			w.mu.Lock()
			w.lastResult = res
			w.hasResult = true
			w.mu.Unlock()
		default:
			w.mu.Lock()
			defer w.mu.Unlock()
			return w.lastResult, w.hasResult
		}
	}
}

// loop consumes requests and executes them.
func (w *AsyncRenderWorker) loop() {
	defer w.wg.Done()

	for {
		select {
		case req := <-w.reqCh:
			w.publish(w.convert(req))
		case <-w.stopCh:
			return
		}
	}
}

// publish stores res, evicting the oldest unread result when the buffer is full
func (w *AsyncRenderWorker) publish(res RenderOutcome) {
	for {
		select {
		case w.resCh <- res:
			return
		default:
		}
		select {
		case <-w.resCh:
		default:
		}
	}
}

func (w *AsyncRenderWorker) convert(req renderRequest) RenderOutcome {
	if req.src == nil {
		return RenderOutcome{Params: req.params, Err: fmt.Errorf("no source to convert: %w", ErrInvalidDimensions)}
	}
	start := time.Now()
	doc, err := w.conv.Convert(req.src, req.params)
	return RenderOutcome{
		Document: doc,
		Params:   req.params,
		Source:   req.src,
		Duration: time.Since(start),
		Err:      err,
	}
}
