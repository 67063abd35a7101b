// Package stream implements the ordered asynchronous work queue that models
// a device stream. Work items execute on a dedicated worker goroutine in
// submission order; the host thread never blocks in Enqueue. Ordering across
// streams is the caller's responsibility.
package stream

import (
	"errors"
	"sync"

	"k8s.io/klog/v2"

	"github.com/strand-ml/strand/internal/tensor"
)

// ErrClosed is returned by Enqueue after Close.
var ErrClosed = errors.New("stream closed")

const defaultQueueDepth = 64

// Stream is a FIFO queue of device work bound to one device. After the first
// work item fails the stream is poisoned: remaining and later items are
// dropped, and the error is reported by Enqueue and Synchronize until the
// stream is closed.
type Stream struct {
	device tensor.Device
	work   chan func() error
	done   chan struct{}

	mu     sync.Mutex
	err    error
	closed bool

	pending sync.WaitGroup
}

// New creates a stream for the given device and starts its worker.
func New(device tensor.Device) *Stream {
	s := &Stream{
		device: device,
		work:   make(chan func() error, defaultQueueDepth),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Stream) run() {
	defer close(s.done)
	for fn := range s.work {
		if s.Err() == nil {
			if err := fn(); err != nil {
				klog.V(2).Infof("stream %s poisoned: %v", s.device, err)
				s.setErr(err)
			}
		}
		s.pending.Done()
	}
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Err returns the sticky error, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Device returns the device this stream is bound to.
func (s *Stream) Device() tensor.Device {
	return s.device
}

// Enqueue submits a work item and returns without waiting for it to run.
// Returns the sticky error if the stream is already poisoned, or ErrClosed
// after Close; in both cases the item is not queued.
func (s *Stream) Enqueue(work func() error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		return err
	}
	s.pending.Add(1)
	s.mu.Unlock()

	s.work <- work
	return nil
}

// Synchronize blocks until all previously enqueued work has executed and
// returns the sticky error, if any.
func (s *Stream) Synchronize() error {
	s.pending.Wait()
	return s.Err()
}

// Close drains the queue and stops the worker. Safe to call once.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.err
	}
	s.closed = true
	s.mu.Unlock()

	s.pending.Wait()
	close(s.work)
	<-s.done
	return s.Err()
}
