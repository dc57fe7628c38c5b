package session

import (
	"testing"
)

func TestManager_ConnectDisconnect(t *testing.T) {
	m := NewManager()

	s := m.Connect("conn-1")
	if s.Conv == nil {
		t.Fatal("Expected a seeded conversation")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}

	got, ok := m.Get("conn-1")
	if !ok || got != s {
		t.Error("Expected Get to return the connected session")
	}

	m.Disconnect("conn-1")
	if _, ok := m.Get("conn-1"); ok {
		t.Error("Expected session discarded after disconnect")
	}
	if m.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", m.Count())
	}
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := NewManager()
	a := m.Connect("conn-a")
	b := m.Connect("conn-b")

	if a.Conv == b.Conv {
		t.Error("Expected each session to own its conversation")
	}
	if a.Conv.ThreadID == b.Conv.ThreadID {
		t.Error("Expected distinct thread ids")
	}
}

func TestSession_SingleFlightGate(t *testing.T) {
	m := NewManager()
	s := m.Connect("conn-1")

	if !s.BeginTurn() {
		t.Fatal("Expected first BeginTurn to succeed")
	}
	if s.BeginTurn() {
		t.Error("Expected second BeginTurn to fail while turn in flight")
	}

	s.EndTurn()
	if !s.BeginTurn() {
		t.Error("Expected BeginTurn to succeed after EndTurn")
	}
	s.EndTurn()
}

func TestManager_DisconnectUnknownIsNoop(t *testing.T) {
	m := NewManager()
	m.Disconnect("never-connected")

	if m.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", m.Count())
	}
}
