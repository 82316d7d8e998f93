package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"weathercat/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerial_SameKeyInOrder(t *testing.T) {
	s := NewSerial(4, 8, testutil.NewTestLogger())

	var mu sync.Mutex
	var got []int
	var running int32

	for i := 0; i < 50; i++ {
		i := i
		require.NoError(t, s.Submit(42, func() {
			assert.Equal(t, int32(1), atomic.AddInt32(&running, 1), "jobs of one key overlap")
			time.Sleep(time.Millisecond)
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			atomic.AddInt32(&running, -1)
		}))
	}
	s.Stop()

	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestSerial_DifferentKeysRunInParallel(t *testing.T) {
	s := NewSerial(2, 1, testutil.NewTestLogger())
	defer s.Stop()

	release := make(chan struct{})
	started := make(chan int64, 2)

	for _, key := range []int64{0, 1} {
		key := key
		require.NoError(t, s.Submit(key, func() {
			started <- key
			<-release
		}))
	}

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("jobs on different shards did not run concurrently")
		}
	}
	close(release)
}

func TestSerial_RecoversFromPanic(t *testing.T) {
	s := NewSerial(1, 2, testutil.NewTestLogger())

	var ran int32
	require.NoError(t, s.Submit(7, func() { panic("boom") }))
	require.NoError(t, s.Submit(7, func() { atomic.AddInt32(&ran, 1) }))
	s.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}

func TestSerial_SubmitAfterStop(t *testing.T) {
	s := NewSerial(1, 1, testutil.NewTestLogger())
	s.Stop()
	s.Stop()

	err := s.Submit(1, func() {})

	assert.ErrorIs(t, err, ErrStopped)
}

func TestShardOf(t *testing.T) {
	assert.Equal(t, 0, shardOf(8, 4))
	assert.Equal(t, 3, shardOf(-1, 4))
	assert.Equal(t, shardOf(-1001234567890, 8), shardOf(-1001234567890, 8))
	assert.Less(t, shardOf(-1001234567890, 8), 8)
}
