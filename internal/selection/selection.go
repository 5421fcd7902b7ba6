package selection

import "github.com/tactio/hapticue/internal/cue"

// State tracks the multi-selection set and the primary cue shown in a
// property panel. Only the gesture machine and the editor mutate it.
type State struct {
	ids     map[cue.ID]struct{}
	primary cue.ID // 0 when no primary
}

func New() *State {
	return &State{ids: make(map[cue.ID]struct{})}
}

func (s *State) Has(id cue.ID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *State) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in no particular order.
func (s *State) IDs() []cue.ID {
	out := make([]cue.ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// Primary returns the property-panel target, ok false when there is none.
func (s *State) Primary() (cue.ID, bool) {
	return s.primary, s.primary != 0
}

// Replace makes id the sole selected cue and the primary.
func (s *State) Replace(id cue.ID) {
	s.ids = map[cue.ID]struct{}{id: {}}
	s.primary = id
}

// Add joins id to the set without touching the rest; it becomes primary
// only if there was none.
func (s *State) Add(id cue.ID) {
	s.ids[id] = struct{}{}
	if s.primary == 0 {
		s.primary = id
	}
}

// Toggle flips membership of id. When the primary is toggled out, an
// arbitrary remaining member takes over (or the primary clears).
func (s *State) Toggle(id cue.ID) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		if s.primary == id {
			s.primary = 0
			for rest := range s.ids {
				s.primary = rest
				break
			}
		}
		return
	}
	s.ids[id] = struct{}{}
	if s.primary == 0 {
		s.primary = id
	}
}

func (s *State) Clear() {
	s.ids = make(map[cue.ID]struct{})
	s.primary = 0
}

// Drop removes id if present, fixing up the primary the same way Toggle
// does. Used when cues are deleted out from under the selection.
func (s *State) Drop(id cue.ID) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	if s.primary == id {
		s.primary = 0
		for rest := range s.ids {
			s.primary = rest
			break
		}
	}
}
