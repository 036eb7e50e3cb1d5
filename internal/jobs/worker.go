package jobs

import (
	"context"
	"log"
	"time"
)

// JobProcessor is one schedulable unit of background work.
type JobProcessor interface {
	ProcessJobs(ctx context.Context) error
}

// Worker drives a JobProcessor on a fixed schedule. All passes run on one
// goroutine, so at most one reingest pass is ever in flight.
type Worker struct {
	processor JobProcessor
	interval  time.Duration
	stop      chan struct{}
	done      chan struct{}
}

// NewWorker creates a Worker that runs the processor every interval.
func NewWorker(processor JobProcessor, interval time.Duration) *Worker {
	return &Worker{
		processor: processor,
		interval:  interval,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start runs the polling loop until the context is cancelled or Stop is
// called. A failed pass is logged and the schedule keeps going.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.done)

	log.Printf("worker running every %v", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("worker exiting: context cancelled")
			return
		case <-w.stop:
			log.Println("worker exiting: stop requested")
			return
		case <-ticker.C:
			if err := w.processor.ProcessJobs(ctx); err != nil {
				log.Printf("background pass failed: %v", err)
			}
		}
	}
}

// Stop signals the loop to exit and waits for the current pass to finish.
func (w *Worker) Stop() {
	close(w.stop)
	<-w.done
}
