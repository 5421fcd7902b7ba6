package selection

import (
	"testing"

	"github.com/tactio/hapticue/internal/cue"
)

func TestReplaceSetsSoleSelectionAndPrimary(t *testing.T) {
	s := New()
	s.Add(1)
	s.Add(2)
	s.Replace(3)
	if s.Len() != 1 || !s.Has(3) {
		t.Fatalf("replace left %v selected", s.IDs())
	}
	if p, ok := s.Primary(); !ok || p != 3 {
		t.Errorf("primary = %v/%v, want 3", p, ok)
	}
}

func TestToggleTwiceRestoresSet(t *testing.T) {
	s := New()
	s.Add(1)
	s.Add(2)
	before := map[cue.ID]bool{}
	for _, id := range s.IDs() {
		before[id] = true
	}

	s.Toggle(5)
	s.Toggle(5)

	if s.Len() != len(before) {
		t.Fatalf("set size changed: %d vs %d", s.Len(), len(before))
	}
	for id := range before {
		if !s.Has(id) {
			t.Errorf("id %v lost after toggle round trip", id)
		}
	}
}

func TestTogglePrimaryOutReassigns(t *testing.T) {
	s := New()
	s.Replace(1)
	s.Toggle(2)
	s.Toggle(1) // primary leaves the set
	p, ok := s.Primary()
	if !ok || p != 2 {
		t.Errorf("primary = %v/%v, want 2", p, ok)
	}
	s.Toggle(2)
	if _, ok := s.Primary(); ok {
		t.Error("empty selection still has a primary")
	}
}

func TestDropMissingIsNoop(t *testing.T) {
	s := New()
	s.Add(1)
	s.Drop(9)
	if s.Len() != 1 {
		t.Errorf("drop of missing id changed the set: %v", s.IDs())
	}
	s.Drop(1)
	if s.Len() != 0 {
		t.Errorf("drop failed: %v", s.IDs())
	}
}
