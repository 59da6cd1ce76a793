// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assign

import (
	"errors"
	"sync"
	"time"
)

var ErrQueueClosed = errors.New("assignment queue is closed")

// Queue runs tasks one at a time on a single worker goroutine, pausing a
// fixed delay between consecutive tasks.
type Queue struct {
	delay time.Duration
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewQueue starts the worker. Close must be called to stop it.
func NewQueue(delay time.Duration) *Queue {
	q := &Queue{
		delay: delay,
		tasks: make(chan func()),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)

	var last time.Time
	exec := func(fn func()) {
		if !last.IsZero() {
			if wait := q.delay - time.Since(last); wait > 0 {
				time.Sleep(wait)
			}
		}
		fn()
		last = time.Now()
	}

	for {
		select {
		case fn := <-q.tasks:
			exec(fn)
		case <-q.quit:
			// take whatever is already handed over, then stop
			for {
				select {
				case fn := <-q.tasks:
					exec(fn)
				default:
					return
				}
			}
		}
	}
}

// Do runs fn on the worker and waits for it to finish.
func (q *Queue) Do(fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case q.tasks <- task:
	case <-q.quit:
		return ErrQueueClosed
	}
	<-finished
	return nil
}

// Close stops accepting tasks and waits for the worker to exit.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.quit) })
	<-q.done
}
