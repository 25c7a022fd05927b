package capture

import (
	"errors"
	"sync"
)

var errWorkerClosed = errors.New("post-processing worker is closed")

// worker runs jobs one at a time on a single goroutine.
type worker struct {
	mu     sync.RWMutex
	closed bool
	jobs   chan func()
	done   chan struct{}
}

func newWorker() *worker {
	w := &worker{
		jobs: make(chan func()),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *worker) run() {
	defer close(w.done)
	for job := range w.jobs {
		job()
	}
}

// do runs fn on the worker goroutine and waits for it to return.
func (w *worker) do(fn func()) error {
	finished := make(chan struct{})

	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		return errWorkerClosed
	}
	w.jobs <- func() {
		defer close(finished)
		fn()
	}
	w.mu.RUnlock()

	<-finished
	return nil
}

// close stops the worker after the job in progress and waits for it to exit.
func (w *worker) close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
	w.mu.Unlock()
	<-w.done
}
