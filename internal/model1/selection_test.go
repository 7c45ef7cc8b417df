package model1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggle(t *testing.T) {
	s := NewSelection("1", "2", "3")

	s.Toggle("1")
	s.Toggle("3")
	assert.Equal(t, 2, s.Count())
	assert.True(t, s.IsSelected("1"))

	s.Toggle("1")
	assert.False(t, s.IsSelected("1"))
	assert.Equal(t, []string{"3"}, s.IDs())
}

func TestSelectionToggleUnknown(t *testing.T) {
	s := NewSelection("1")

	s.Toggle("42")
	assert.Equal(t, 0, s.Count())
}

func TestSelectionToggleAll(t *testing.T) {
	uu := map[string]struct {
		pre  []string
		page []string
		e    []string
	}{
		"none-selected": {
			page: []string{"1", "2"},
			e:    []string{"1", "2"},
		},
		"some-selected": {
			pre:  []string{"1"},
			page: []string{"1", "2"},
			e:    []string{"1", "2"},
		},
		"all-selected": {
			pre:  []string{"1", "2", "3"},
			page: []string{"1", "2"},
			e:    []string{"3"},
		},
		"empty-page": {
			pre: []string{"3"},
			e:   []string{"3"},
		},
		"unknown-ids": {
			page: []string{"1", "9"},
			e:    []string{"1"},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			s := NewSelection("1", "2", "3")
			for _, id := range u.pre {
				s.Toggle(id)
			}
			s.ToggleAll(u.page)
			assert.Equal(t, u.e, s.IDs())
		})
	}
}

func TestSelectionPrune(t *testing.T) {
	s := NewSelection("1", "2", "3")
	s.ToggleAll([]string{"1", "2", "3"})

	s.Prune([]string{"2", "4"})
	assert.Equal(t, []string{"2"}, s.IDs())

	s.Toggle("1")
	assert.Equal(t, []string{"2"}, s.IDs())

	s.Toggle("4")
	assert.Subset(t, []string{"2", "4"}, s.IDs())
	assert.Equal(t, 2, s.Count())
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection("1", "2")
	s.ToggleAll([]string{"1", "2"})
	assert.True(t, s.AllSelected([]string{"1", "2"}))

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.AllSelected([]string{"1", "2"}))
}
