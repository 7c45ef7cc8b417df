package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/model1"
)

// MaxTabKeys is the number of tabs reachable with the digit keys, All
// being 0.
const MaxTabKeys = 10

// TabBar shows the status tabs with their counts.
type TabBar struct {
	*tview.TextView

	tabs   model1.Tabs
	active string
}

// NewTabBar returns an empty tab bar.
func NewTabBar() *TabBar {
	t := TabBar{TextView: tview.NewTextView(), active: model1.AllTab}
	t.SetDynamicColors(true)
	t.SetWrap(false)
	t.SetBackgroundColor(tcell.ColorDefault)
	t.SetBorderPadding(0, 0, 1, 1)

	return &t
}

// Update redraws the tabs.
func (t *TabBar) Update(tabs model1.Tabs, active string) {
	t.tabs, t.active = tabs, active
	t.Clear()
	_, _ = fmt.Fprint(t, Tabline(tabs, active))
}

// TabAt returns the tab bound to digit key n.
func (t *TabBar) TabAt(n int) (string, bool) {
	return TabForKey(t.tabs, n)
}

// TabForKey maps digit n to a tab: 0 is All, 1..9 the following tabs.
func TabForKey(tabs model1.Tabs, n int) (string, bool) {
	if n < 0 || n >= MaxTabKeys || n >= len(tabs) {
		return "", false
	}
	return tabs[n].Name, true
}

// Tabline renders tabs as a tview color-tagged line.
func Tabline(tabs model1.Tabs, active string) string {
	var b strings.Builder
	for i, tab := range tabs {
		color := tcell.Color(model1.StatusColor(tab.Name))
		name := tab.Name
		if name == "" {
			name = "-"
		}
		key := ""
		if i < MaxTabKeys {
			key = fmt.Sprintf("<%d>", i)
		}
		if tab.Name == active {
			fmt.Fprintf(&b, "[black:%s:b] %s %s %d [-:-:-] ", colorName(color), key, name, tab.Count)
			continue
		}
		fmt.Fprintf(&b, "[%s::-] %s %s [white::b]%d[-:-:-] ", colorName(color), key, name, tab.Count)
	}

	return b.String()
}

func colorName(c tcell.Color) string {
	return fmt.Sprintf("#%06x", c.Hex())
}
