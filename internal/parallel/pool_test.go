package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
)

func TestExecuteNCoversAllIndices(t *testing.T) {
	p := New(4)
	defer p.Close()

	const n = 1000
	var hits [n]int32
	p.ExecuteN(n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d executed %d times, want 1", i, h)
		}
	}
}

func TestExecuteNSmallAndEmpty(t *testing.T) {
	p := New(8)
	defer p.Close()

	var count atomic.Int32
	p.ExecuteN(0, func(int) { count.Add(1) })
	p.ExecuteN(-5, func(int) { count.Add(1) })
	if count.Load() != 0 {
		t.Errorf("empty runs executed %d items, want 0", count.Load())
	}

	p.ExecuteN(3, func(int) { count.Add(1) })
	if count.Load() != 3 {
		t.Errorf("n=3 executed %d items, want 3", count.Load())
	}
}

func TestDefaultWorkerCount(t *testing.T) {
	p := New(0)
	defer p.Close()
	if p.Workers() != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers() = %d, want GOMAXPROCS %d", p.Workers(), runtime.GOMAXPROCS(0))
	}
}

func TestExecuteAfterClose(t *testing.T) {
	p := New(2)
	p.Close()
	p.Close() // idempotent

	var count atomic.Int32
	p.ExecuteN(10, func(int) { count.Add(1) })
	if count.Load() != 10 {
		t.Errorf("closed pool executed %d items inline, want 10", count.Load())
	}
}

func TestConcurrentExecuteN(t *testing.T) {
	p := New(4)
	defer p.Close()

	var total atomic.Int64
	done := make(chan struct{})
	for g := 0; g < 3; g++ {
		go func() {
			p.ExecuteN(200, func(int) { total.Add(1) })
			done <- struct{}{}
		}()
	}
	for g := 0; g < 3; g++ {
		<-done
	}
	if total.Load() != 600 {
		t.Errorf("concurrent ExecuteN ran %d items, want 600", total.Load())
	}
}
