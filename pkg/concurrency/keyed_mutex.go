// Package concurrency 동시성 제어 유틸리티를 제공합니다.
package concurrency

import "sync"

// KeyedMutex 키별로 독립적인 뮤텍스를 제공합니다. 서로 다른 키에 대한 작업은 병렬로 진행됩니다.
//
// 참조 카운트가 0이 된 키의 뮤텍스는 즉시 정리됩니다.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*refMutex
}

type refMutex struct {
	mu       sync.Mutex
	refCount int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{locks: make(map[K]*refMutex)}
}

// Lock key에 대한 락을 획득합니다.
func (km *KeyedMutex[K]) Lock(key K) {
	km.mu.Lock()
	e, ok := km.locks[key]
	if !ok {
		e = &refMutex{}
		km.locks[key] = e
	}
	e.refCount++
	km.mu.Unlock()

	e.mu.Lock()
}

// Unlock key에 대한 락을 해제합니다. 잠기지 않은 키를 해제하면 패닉이 발생합니다.
func (km *KeyedMutex[K]) Unlock(key K) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("concurrency: 잠기지 않은 KeyedMutex의 잠금 해제 시도")
	}

	e.mu.Unlock()

	e.refCount--
	if e.refCount == 0 {
		delete(km.locks, key)
	}
}

// WithLock key에 대한 락을 잡은 상태로 fn을 실행합니다.
func (km *KeyedMutex[K]) WithLock(key K, fn func() error) error {
	km.Lock(key)
	defer km.Unlock(key)

	return fn()
}

// Len 락을 보유 중이거나 대기 중인 키의 개수를 반환합니다.
func (km *KeyedMutex[K]) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}
