package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrQueueFull = errors.New("event queue full")
	ErrClosed    = errors.New("publisher closed")
)

type queued struct {
	routingKey string
	data       any
}

// Async hands events to a single background worker so request paths never
// wait on the broker. Events are dropped when the queue is full.
type Async struct {
	next    Publisher
	queue   chan queued
	timeout time.Duration
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool
	once   sync.Once
	done   chan struct{}
}

func NewAsync(next Publisher, size int, timeout time.Duration, log *zap.Logger) *Async {
	if size <= 0 {
		size = 1
	}
	a := &Async{
		next:    next,
		queue:   make(chan queued, size),
		timeout: timeout,
		log:     log.With(zap.String("publisher", "async")),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

// Publish enqueues without blocking. The caller's context is not used.
func (a *Async) Publish(_ context.Context, routingKey string, data any) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- queued{routingKey: routingKey, data: data}:
		return nil
	default:
		return ErrQueueFull
	}
}

func (a *Async) run() {
	defer close(a.done)

	for msg := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		if err := a.next.Publish(ctx, msg.routingKey, msg.data); err != nil {
			a.log.Warn("Failed to publish event", zap.String("routing_key", msg.routingKey), zap.Error(err))
		}
		cancel()
	}
}

// Close stops accepting events, drains the queue, then closes the inner publisher.
func (a *Async) Close() error {
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.queue)
		a.mu.Unlock()
	})
	<-a.done
	return a.next.Close()
}
