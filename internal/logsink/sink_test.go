package logsink

import (
	"fmt"
	"testing"
)

func TestSink_NewestFirst(t *testing.T) {
	s := NewSilent()

	s.Infof("first")
	s.Warnf("second")
	s.Errorf("third")

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}

	if entries[0].Message != "third" || entries[0].Level != LevelError {
		t.Errorf("entries[0] = %+v, want newest (third, error)", entries[0])
	}
	if entries[2].Message != "first" || entries[2].Level != LevelInfo {
		t.Errorf("entries[2] = %+v, want oldest (first, info)", entries[2])
	}
}

func TestSink_Cap(t *testing.T) {
	s := NewSilent()

	for i := 0; i < MaxEntries+20; i++ {
		s.Infof("entry %d", i)
	}

	if got := s.Len(); got != MaxEntries {
		t.Fatalf("Len() = %d, want %d", got, MaxEntries)
	}

	entries := s.Entries()
	wantNewest := fmt.Sprintf("entry %d", MaxEntries+19)
	if entries[0].Message != wantNewest {
		t.Errorf("newest = %q, want %q", entries[0].Message, wantNewest)
	}
	wantOldest := fmt.Sprintf("entry %d", 20)
	if entries[MaxEntries-1].Message != wantOldest {
		t.Errorf("oldest retained = %q, want %q", entries[MaxEntries-1].Message, wantOldest)
	}
}

func TestSink_EntriesIsACopy(t *testing.T) {
	s := NewSilent()
	s.Infof("only")

	entries := s.Entries()
	entries[0].Message = "mutated"

	if got := s.Entries()[0].Message; got != "only" {
		t.Errorf("internal entry mutated through returned slice: %q", got)
	}
}
