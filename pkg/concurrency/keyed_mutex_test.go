package concurrency

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_같은_키는_직렬화(t *testing.T) {
	km := NewKeyedMutex[string]()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = km.WithLock("report", func() error {
				cur := atomic.AddInt32(&active, 1)
				if cur > atomic.LoadInt32(&maxActive) {
					atomic.StoreInt32(&maxActive, cur)
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, km.Len(), "모든 락이 해제되면 키가 정리되어야 합니다")
}

func TestKeyedMutex_다른_키는_병렬(t *testing.T) {
	km := NewKeyedMutex[string]()

	km.Lock("a")
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("다른 키의 락이 블로킹되었습니다")
	}

	assert.Equal(t, 1, km.Len())
	km.Unlock("a")
	assert.Equal(t, 0, km.Len())
}

func TestKeyedMutex_WithLock_에러_전파(t *testing.T) {
	km := NewKeyedMutex[int]()
	want := errors.New("boom")

	assert.Equal(t, want, km.WithLock(1, func() error { return want }))
	assert.Equal(t, 0, km.Len())
}

func TestKeyedMutex_잠기지_않은_키_해제시_패닉(t *testing.T) {
	km := NewKeyedMutex[string]()
	assert.Panics(t, func() { km.Unlock("missing") })
}
