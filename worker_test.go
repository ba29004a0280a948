package braille

import (
	"image/color"
	"testing"
	"time"
)

func TestAsyncRenderWorkerProducesLatestResult(t *testing.T) {
	worker := NewAsyncRenderWorker(&Converter{Resizer: Nearest}, AsyncWorkerOptions{Workers: 1})
	t.Cleanup(worker.Close)

	if _, ok := worker.TryLatest(); ok {
		t.Fatalf("expected no result before anything was scheduled")
	}

	src := FromImage(createSolidImage(20, 20, color.Black))
	worker.Schedule(src, DefaultParams())

	res := waitForResult(t, worker, 2*time.Second)
	if res.Err != nil {
		t.Fatalf("worker render failed: %v", res.Err)
	}
	if res.Source != src {
		t.Fatalf("result does not carry its source")
	}
	if res.Document.Lines != 50 {
		t.Fatalf("unexpected line count %d", res.Document.Lines)
	}
	if res.Document.Empty() {
		t.Fatalf("expected render output")
	}
}

func TestAsyncRenderWorkerLatestParamsWin(t *testing.T) {
	worker := NewAsyncRenderWorker(nil, AsyncWorkerOptions{Workers: 1})
	t.Cleanup(worker.Close)

	src := FromImage(createTestImage(40, 40))
	for threshold := 0; threshold <= 200; threshold += 20 {
		worker.Schedule(src, Params{ScalePercent: 50, Threshold: threshold})
	}

	want := Params{ScalePercent: 50, Threshold: 200}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := worker.TryLatest(); ok && res.Params == want {
			if res.Err != nil {
				t.Fatalf("render failed: %v", res.Err)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for the latest params to render")
}

func TestAsyncRenderWorkerReportsErrors(t *testing.T) {
	worker := NewAsyncRenderWorker(nil, AsyncWorkerOptions{})
	t.Cleanup(worker.Close)

	worker.Schedule(FromImage(createTestImage(10, 10)), Params{ScalePercent: 100, Threshold: 999})

	res := waitForResult(t, worker, 2*time.Second)
	if res.Err == nil {
		t.Fatalf("expected an out of range error")
	}
	if !res.Document.Empty() {
		t.Fatalf("expected no output on error")
	}
}

func TestAsyncRenderWorkerNilSource(t *testing.T) {
	worker := NewAsyncRenderWorker(nil, AsyncWorkerOptions{})
	t.Cleanup(worker.Close)

	worker.Schedule(nil, Params{ScalePercent: 120, Threshold: 1})

	res := waitForResult(t, worker, 2*time.Second)
	if res.Err == nil {
		t.Fatalf("expected an error for a nil source")
	}
}

func TestAsyncRenderWorkerCloseIsIdempotent(t *testing.T) {
	worker := NewAsyncRenderWorker(nil, AsyncWorkerOptions{Workers: 3, Queue: 2})
	worker.Close()
	worker.Close()
}

func waitForResult(t *testing.T, worker *AsyncRenderWorker, timeout time.Duration) RenderOutcome {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if res, ok := worker.TryLatest(); ok {
			return res
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for worker result")
	return RenderOutcome{}
}
