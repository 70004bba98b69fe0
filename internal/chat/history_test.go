package chat

import (
	"fmt"
	"testing"
)

func TestTailBound(t *testing.T) {
	s := NewHistoryStore()
	for i := 0; i < 150; i++ {
		s.Append("lobby", Record{From: "alice", Message: fmt.Sprintf("msg-%d", i)})
	}

	tail := s.Tail("lobby", 100)
	if len(tail) != 100 {
		t.Fatalf("expected 100 records, got %d", len(tail))
	}
	if tail[0].Message != "msg-50" {
		t.Errorf("expected suffix to start at msg-50, got %q", tail[0].Message)
	}
	if tail[99].Message != "msg-149" {
		t.Errorf("expected suffix to end at msg-149, got %q", tail[99].Message)
	}
}

func TestTailShortLog(t *testing.T) {
	s := NewHistoryStore()
	s.Append("lobby", Record{Message: "only"})

	tail := s.Tail("lobby", 100)
	if len(tail) != 1 || tail[0].Message != "only" {
		t.Errorf("unexpected tail: %v", tail)
	}
}

func TestTailUnknownKey(t *testing.T) {
	s := NewHistoryStore()

	if tail := s.Tail("nope", 100); len(tail) != 0 {
		t.Errorf("unknown key must yield empty tail, got %v", tail)
	}
}

func TestTailDefaultLimit(t *testing.T) {
	s := NewHistoryStore()
	for i := 0; i < DefaultTail+10; i++ {
		s.Append("lobby", Record{Message: fmt.Sprintf("msg-%d", i)})
	}

	if tail := s.Tail("lobby", 0); len(tail) != DefaultTail {
		t.Errorf("expected default tail of %d, got %d", DefaultTail, len(tail))
	}
}

func TestTailReturnsCopy(t *testing.T) {
	s := NewHistoryStore()
	s.Append("lobby", Record{Message: "original"})

	tail := s.Tail("lobby", 10)
	tail[0].Message = "mutated"

	if got := s.Tail("lobby", 10)[0].Message; got != "original" {
		t.Errorf("tail must not expose internal storage, got %q", got)
	}
}
