package input

import (
	"context"
	"sync"
)

// Dispatcher delivers events to a handler on its own goroutine, one at a
// time and in the order they were posted.
type Dispatcher struct {
	ch      chan Event
	handler func(Event)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	closeOnce sync.Once
}

// NewDispatcher starts the delivery goroutine. It stops when ctx is done or
// Close is called.
func NewDispatcher(ctx context.Context, handler func(Event), buffer int) *Dispatcher {
	ctx, cancel := context.WithCancel(ctx)
	d := &Dispatcher{
		ch:      make(chan Event, buffer),
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case e := <-d.ch:
			d.handler(e)
		case <-d.ctx.Done():
			// deliver what was already queued so no sequence is cut short
			for {
				select {
				case e := <-d.ch:
					d.handler(e)
				default:
					return
				}
			}
		}
	}
}

// Post queues e, blocking while the buffer is full. It reports false once the
// dispatcher has stopped.
func (d *Dispatcher) Post(e Event) bool {
	if d.ctx.Err() != nil {
		return false
	}
	select {
	case d.ch <- e:
		return true
	case <-d.ctx.Done():
		return false
	}
}

// Close stops the dispatcher and waits for queued events to be delivered.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.cancel()
		d.wg.Wait()
	})
}
