package model1

import "sort"

// Selection tracks the ids of selected rows. Ids unknown to the current
// row store can never be selected.
type Selection struct {
	known    map[string]struct{}
	selected map[string]struct{}
}

// NewSelection returns an empty selection over the given row ids.
func NewSelection(ids ...string) *Selection {
	s := Selection{selected: make(map[string]struct{})}
	s.Prune(ids)
	return &s
}

// Prune records the ids of a freshly loaded row store and drops every
// selected id that is no longer part of it.
func (s *Selection) Prune(ids []string) {
	s.known = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.known[id] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := s.known[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// Toggle flips the selection of id. Unknown ids are ignored.
func (s *Selection) Toggle(id string) {
	if _, ok := s.known[id]; !ok {
		return
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// ToggleAll selects every id of the page unless they are all selected
// already, in which case it deselects them.
func (s *Selection) ToggleAll(pageIDs []string) {
	all := true
	for _, id := range pageIDs {
		if _, ok := s.known[id]; !ok {
			continue
		}
		if _, ok := s.selected[id]; !ok {
			all = false
			break
		}
	}
	for _, id := range pageIDs {
		if _, ok := s.known[id]; !ok {
			continue
		}
		if all {
			delete(s.selected, id)
		} else {
			s.selected[id] = struct{}{}
		}
	}
}

// AllSelected returns true if every known id of the page is selected.
func (s *Selection) AllSelected(pageIDs []string) bool {
	var n int
	for _, id := range pageIDs {
		if _, ok := s.known[id]; !ok {
			continue
		}
		if _, ok := s.selected[id]; !ok {
			return false
		}
		n++
	}
	return n > 0
}

// Clear empties the selection.
func (s *Selection) Clear() {
	for id := range s.selected {
		delete(s.selected, id)
	}
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	return len(s.selected)
}

// IsSelected returns true if id is selected.
func (s *Selection) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// IDs returns the selected ids sorted.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
