// ABOUTME: In-memory Store for ephemeral sessions and tests.
// ABOUTME: Can be told to fail reads or writes to exercise error paths.

package kv

import (
	"errors"
	"sync"
)

// ErrInjected is the error returned by a Memory store set to fail.
var ErrInjected = errors.New("injected storage failure")

type Memory struct {
	mu         sync.Mutex
	data       map[string][]byte
	failReads  bool
	failWrites bool
	writes     int
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, ErrInjected
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return ErrInjected
	}
	m.data[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return ErrInjected
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// FailReads makes subsequent Get calls fail.
func (m *Memory) FailReads(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReads = fail
}

// FailWrites makes subsequent Set and Delete calls fail.
func (m *Memory) FailWrites(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = fail
}

// Writes returns the number of successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
