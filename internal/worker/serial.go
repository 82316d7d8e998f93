// Package worker runs jobs so that jobs with the same key never overlap.
package worker

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrStopped is returned by Submit after Stop
var ErrStopped = errors.New("worker pool stopped")

// Serial is a sharded executor. Jobs with the same key run one at a time in
// submission order; jobs with different keys may run in parallel.
type Serial struct {
	shards []chan func()
	logger *zap.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewSerial starts workers goroutines, each with a queue of queueSize jobs
func NewSerial(workers, queueSize int, logger *zap.Logger) *Serial {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	s := &Serial{
		shards: make([]chan func(), workers),
		logger: logger,
	}
	for i := range s.shards {
		s.shards[i] = make(chan func(), queueSize)
		s.wg.Add(1)
		go s.run(i)
	}
	return s
}

// Submit queues job on the shard owning key. It blocks while the shard is full.
func (s *Serial) Submit(key int64, job func()) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		return ErrStopped
	}
	s.shards[shardOf(key, len(s.shards))] <- job
	return nil
}

// Stop rejects new jobs, drains queued ones and waits for the workers to exit
func (s *Serial) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	for _, ch := range s.shards {
		close(ch)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Serial) run(shard int) {
	defer s.wg.Done()
	for job := range s.shards[shard] {
		s.execute(shard, job)
	}
}

func (s *Serial) execute(shard int, job func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Job panicked",
				zap.Int("shard", shard),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()
	job()
}

func shardOf(key int64, n int) int {
	m := key % int64(n)
	if m < 0 {
		m += int64(n)
	}
	return int(m)
}
