// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"strings"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"

	"github.com/vdash/vdash/internal/model"
)

// maxCrumbs caps the trail; older screens collapse into an ellipsis.
const maxCrumbs = 5

// Crumbs shows the trail of screens leading to the current one.
type Crumbs struct {
	*tview.TextView

	stack *model.Stack
}

// NewCrumbs returns a trail tracking stack.
func NewCrumbs(stack *model.Stack) *Crumbs {
	c := Crumbs{
		TextView: tview.NewTextView(),
		stack:    stack,
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetBorderPadding(0, 0, 1, 1)
	c.SetDynamicColors(true)

	return &c
}

func (c *Crumbs) StackPushed(model.Component)      { c.Refresh(c.stack.Flatten()) }
func (c *Crumbs) StackPopped(_, _ model.Component) { c.Refresh(c.stack.Flatten()) }
func (c *Crumbs) StackTop(model.Component)         { c.Refresh(c.stack.Flatten()) }

// Refresh redraws the trail, the last entry being the current screen.
func (c *Crumbs) Refresh(names []string) {
	c.Clear()
	if len(names) > maxCrumbs {
		_, _ = fmt.Fprint(c, "[gray::-] … ")
		names = names[len(names)-maxCrumbs:]
	}
	for i, n := range names {
		style := "gray::-"
		if i == len(names)-1 {
			style = "black:orange:b"
		}
		_, _ = fmt.Fprintf(c, "[%s] <%s> [-:-:-] ", style, crumbName(n))
	}
}

func crumbName(n string) string {
	return strings.ToLower(strings.Join(strings.Fields(n), ""))
}
