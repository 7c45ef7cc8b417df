package view

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/nav"
)

// Sidebar shows the menu tree. Selecting an item navigates to its url.
type Sidebar struct {
	*tview.TreeView

	menu    nav.Menu
	nodes   map[string]*tview.TreeNode
	onVisit func(url string)
}

// NewSidebar returns a sidebar over menu.
func NewSidebar(menu nav.Menu, onVisit func(string)) *Sidebar {
	s := Sidebar{
		TreeView: tview.NewTreeView(),
		menu:     menu,
		nodes:    make(map[string]*tview.TreeNode),
		onVisit:  onVisit,
	}
	s.SetBorder(true)
	s.SetTitle(" Menu ")
	s.SetBorderColor(tcell.ColorDarkCyan)
	s.SetBackgroundColor(tcell.ColorDefault)
	s.SetGraphicsColor(tcell.ColorDimGray)

	root := tview.NewTreeNode("vdash").SetSelectable(false)
	for _, it := range menu.Items {
		root.AddChild(s.node(it))
	}
	s.SetRoot(root)
	s.SetTopLevel(1)
	s.SetSelectedFunc(s.selected)
	if leaves := menu.Leaves(); len(leaves) > 0 {
		s.SetCurrentNode(s.nodes[leaves[0].ID])
	}

	return &s
}

func (s *Sidebar) node(it nav.Item) *tview.TreeNode {
	n := tview.NewTreeNode(it.Title).SetReference(it)
	s.nodes[it.ID] = n
	switch it.Kind {
	case nav.KindGroup:
		n.SetColor(tcell.ColorAqua).SetSelectable(false)
	case nav.KindCollapse:
		n.SetColor(tcell.ColorOrange).SetExpanded(false)
	default:
		n.SetColor(tcell.ColorWhite)
	}
	for _, c := range it.Children {
		n.AddChild(s.node(c))
	}

	return n
}

func (s *Sidebar) selected(n *tview.TreeNode) {
	it, ok := n.GetReference().(nav.Item)
	if !ok {
		return
	}
	if !it.IsLeaf() {
		n.SetExpanded(!n.IsExpanded())
		return
	}
	if s.onVisit != nil {
		s.onVisit(it.URL)
	}
}

// Highlight marks the entry of url, expanding its parents.
func (s *Sidebar) Highlight(url string) {
	it, ok := s.menu.FindByURL(url)
	if !ok {
		return
	}
	for _, p := range s.menu.Path(it.ID) {
		if n, ok := s.nodes[p.ID]; ok {
			n.SetExpanded(true)
		}
	}
	if n, ok := s.nodes[it.ID]; ok {
		s.SetCurrentNode(n)
	}
}
