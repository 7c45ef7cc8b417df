package model1

// AllTab is the implicit tab matching every status.
const AllTab = "All"

// Tab represents one status value and its row count.
type Tab struct {
	Name  string
	Count int
}

// Tabs lists the status tabs, All first.
type Tabs []Tab

// DeriveTabs collects the distinct values of the status field in first
// seen order, preceded by All, with a row count for each.
func DeriveTabs(h Header, rows Rows, field string) Tabs {
	tt := Tabs{{Name: AllTab, Count: len(rows)}}
	idx, ok := h.IndexOf(field, true)
	if !ok {
		return tt
	}
	pos := make(map[string]int)
	for _, r := range rows {
		v := r.Value(idx)
		if i, ok := pos[v]; ok {
			tt[i].Count++
			continue
		}
		pos[v] = len(tt)
		tt = append(tt, Tab{Name: v, Count: 1})
	}
	return tt
}

// Names returns the tab names in order.
func (t Tabs) Names() []string {
	nn := make([]string, 0, len(t))
	for _, tab := range t {
		nn = append(nn, tab.Name)
	}
	return nn
}

// Count returns the count for the named tab.
func (t Tabs) Count(name string) int {
	for _, tab := range t {
		if tab.Name == name {
			return tab.Count
		}
	}
	return 0
}

// Counts returns tab counts keyed by name.
func (t Tabs) Counts() map[string]int {
	m := make(map[string]int, len(t))
	for _, tab := range t {
		m[tab.Name] = tab.Count
	}
	return m
}

// Has returns true if the named tab exists.
func (t Tabs) Has(name string) bool {
	for _, tab := range t {
		if tab.Name == name {
			return true
		}
	}
	return false
}

// SelectTab points the status filter at tab. All clears it.
func (f *FilterState) SelectTab(field, tab string) {
	if tab == AllTab || tab == "" {
		f.Clear(field)
		return
	}
	f.Set(field, Exact(tab))
}

// ActiveTab returns the tab matching the status filter.
func (f FilterState) ActiveTab(field string) string {
	p, ok := f.Get(field)
	if !ok || p.Op != MatchExact {
		return AllTab
	}
	return p.Value
}
