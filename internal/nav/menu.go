// Package nav models the dashboard menu as an immutable tree.
package nav

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Kind tags a menu node.
type Kind string

const (
	KindItem     Kind = "item"
	KindGroup    Kind = "group"
	KindCollapse Kind = "collapse"
)

// Item represents a menu node. Groups and collapses hold children, items
// hold a url.
type Item struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Kind     Kind   `yaml:"type"`
	URL      string `yaml:"url,omitempty"`
	Icon     string `yaml:"icon,omitempty"`
	Children []Item `yaml:"children,omitempty"`
}

// IsLeaf returns true for navigable items.
func (i Item) IsLeaf() bool {
	return i.Kind == KindItem
}

// Menu is the root list of menu nodes.
type Menu struct {
	Items []Item `yaml:"items"`
}

// WalkFunc visits a node with the chain of its ancestors, root first.
// Returning false stops the walk.
type WalkFunc func(it Item, parents []Item) bool

// Walk visits nodes depth first in declaration order.
func (m Menu) Walk(fn WalkFunc) {
	walk(m.Items, nil, fn)
}

func walk(items []Item, parents []Item, fn WalkFunc) bool {
	for _, it := range items {
		if !fn(it, parents) {
			return false
		}
		if len(it.Children) == 0 {
			continue
		}
		chain := append(append(make([]Item, 0, len(parents)+1), parents...), it)
		if !walk(it.Children, chain, fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given id.
func (m Menu) Find(id string) (Item, bool) {
	var (
		found Item
		ok    bool
	)
	m.Walk(func(it Item, _ []Item) bool {
		if it.ID == id {
			found, ok = it, true
			return false
		}
		return true
	})
	return found, ok
}

// FindByURL returns the leaf item routed to url.
func (m Menu) FindByURL(url string) (Item, bool) {
	url = NormalizeURL(url)
	var (
		found Item
		ok    bool
	)
	m.Walk(func(it Item, _ []Item) bool {
		if it.IsLeaf() && NormalizeURL(it.URL) == url {
			found, ok = it, true
			return false
		}
		return true
	})
	return found, ok
}

// Path returns the nodes from the root down to id, inclusive.
func (m Menu) Path(id string) []Item {
	var path []Item
	m.Walk(func(it Item, parents []Item) bool {
		if it.ID == id {
			path = append(append(path, parents...), it)
			return false
		}
		return true
	})
	return path
}

// Crumbs returns the titles along the path to id.
func (m Menu) Crumbs(id string) []string {
	pp := m.Path(id)
	cc := make([]string, 0, len(pp))
	for _, p := range pp {
		cc = append(cc, p.Title)
	}
	return cc
}

// Leaves returns every leaf item in declaration order.
func (m Menu) Leaves() []Item {
	var out []Item
	m.Walk(func(it Item, _ []Item) bool {
		if it.IsLeaf() {
			out = append(out, it)
		}
		return true
	})
	return out
}

// Validate checks the tree shape: known kinds, unique ids, items with a
// url and containers with children.
func (m Menu) Validate() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool)
	m.Walk(func(it Item, parents []Item) bool {
		field := fieldPath(it, parents)
		switch {
		case it.ID == "":
			errs = errs.Append(field, fmt.Errorf("id is required"))
		case seen[it.ID]:
			errs = errs.Append(field, fmt.Errorf("duplicate id %q", it.ID))
		}
		seen[it.ID] = true

		switch it.Kind {
		case KindItem:
			if it.URL == "" {
				errs = errs.Append(field, fmt.Errorf("item requires a url"))
			}
			if len(it.Children) > 0 {
				errs = errs.Append(field, fmt.Errorf("item cannot have children"))
			}
		case KindGroup, KindCollapse:
			if len(it.Children) == 0 {
				errs = errs.Append(field, fmt.Errorf("%s requires children", it.Kind))
			}
		default:
			errs = errs.Append(field, fmt.Errorf("unknown type %q", it.Kind))
		}
		return true
	})
	return errs.ToError()
}

// NormalizeURL returns url with a single leading slash and no trailing one.
func NormalizeURL(url string) string {
	url = strings.Trim(strings.TrimSpace(url), "/")
	return "/" + url
}

func fieldPath(it Item, parents []Item) string {
	ids := make([]string, 0, len(parents)+1)
	for _, p := range parents {
		ids = append(ids, p.ID)
	}
	return strings.Join(append(ids, it.ID), ".")
}
