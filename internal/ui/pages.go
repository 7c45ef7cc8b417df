package ui

import (
	"fmt"

	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/model"
)

// Pages shows the top of the screen stack.
type Pages struct {
	*tview.Pages
	*model.Stack
}

// NewPages returns a new pages manager
func NewPages() *Pages {
	p := Pages{
		Pages: tview.NewPages(),
		Stack: model.NewStack(),
	}
	p.Stack.AddListener(&p)

	return &p
}

// Current returns the visible component.
func (p *Pages) Current() Component {
	c, _ := p.Top().(Component)
	return c
}

// Show brings a component to the front.
func (p *Pages) Show(c model.Component) {
	p.SwitchToPage(componentID(c))
}

// StackPushed notifies a new component was pushed.
func (p *Pages) StackPushed(c model.Component) {
	comp, ok := c.(Component)
	if !ok {
		return
	}
	p.AddPage(componentID(c), comp, true, true)
}

// StackPopped notifies a component was removed.
func (p *Pages) StackPopped(o, top model.Component) {
	p.RemovePage(componentID(o))
	if top != nil {
		p.Show(top)
	}
}

// StackTop notifies the top of the stack.
func (p *Pages) StackTop(top model.Component) {
	if top != nil {
		p.Show(top)
	}
}

// HasOverlay returns true while a prompt or dialog covers the top
// component.
func (p *Pages) HasOverlay() bool {
	top := p.Top()
	if top == nil {
		return p.GetPageCount() > 0
	}
	name, _ := p.GetFrontPage()
	return name != componentID(top)
}

func componentID(c model.Component) string {
	return fmt.Sprintf("%s-%p", c.Name(), c)
}
