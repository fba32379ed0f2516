package engine

import (
	"testing"
	"time"
)

func newTestManager() *Manager {
	return NewManager(newFakeStore(), &fakeStats{}, time.UTC, DefaultIntervals())
}

func TestManagerStartAndGet(t *testing.T) {
	m := newTestManager()
	defer m.CloseAll()

	e, err := m.Start("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e == nil {
		t.Fatalf("expected engine")
	}

	got, ok := m.Get("u1")
	if !ok {
		t.Fatalf("expected engine to exist")
	}
	if got != e {
		t.Fatalf("Get returned a different engine")
	}
}

func TestManagerDuplicateStart(t *testing.T) {
	m := newTestManager()
	defer m.CloseAll()

	if _, err := m.Start("u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Start("u1"); err != ErrEngineExists {
		t.Fatalf("expected ErrEngineExists, got %v", err)
	}
}

func TestManagerStop(t *testing.T) {
	m := newTestManager()
	defer m.CloseAll()

	if _, err := m.Start("u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Stop("u1"); err != nil {
		t.Fatalf("unexpected error stopping engine: %v", err)
	}

	if _, ok := m.Get("u1"); ok {
		t.Fatalf("expected engine to be gone after Stop")
	}
}

func TestManagerStopMissing(t *testing.T) {
	m := newTestManager()

	if err := m.Stop("ghost"); err != ErrEngineNotFound {
		t.Fatalf("expected ErrEngineNotFound, got %v", err)
	}
}

func TestManagerEvents(t *testing.T) {
	m := newTestManager()
	defer m.CloseAll()

	if _, err := m.Start("u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := m.Events("u1"); !ok {
		t.Fatalf("expected events channel for running engine")
	}
	if _, ok := m.Events("ghost"); ok {
		t.Fatalf("expected no events channel for unknown user")
	}
}
