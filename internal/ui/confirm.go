// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const confirmPageID = "confirm"

// ConfirmFunc is called when user confirms action.
type ConfirmFunc func()

// Confirm is a yes/no modal shown over the pages.
type Confirm struct {
	*tview.Modal

	pages     *Pages
	confirmed bool
	onConfirm ConfirmFunc
	onCancel  func()
}

// NewConfirm returns a confirmation over pages.
func NewConfirm(pages *Pages) *Confirm {
	c := Confirm{
		Modal: tview.NewModal(),
		pages: pages,
	}
	c.SetBackgroundColor(tcell.ColorDefault)
	c.AddButtons([]string{"Yes", "No"})
	c.SetDoneFunc(c.done)
	c.SetDangerous(false)

	return &c
}

// SetMessage sets the confirmation message.
func (c *Confirm) SetMessage(msg string) *Confirm {
	c.SetText(msg)
	return c
}

// SetDangerous styles the dialog for destructive operations.
func (c *Confirm) SetDangerous(dangerous bool) *Confirm {
	text, btn := tcell.ColorWhite, tcell.ColorBlue
	if dangerous {
		text, btn = tcell.ColorRed, tcell.ColorRed
	}
	c.SetTextColor(text)
	c.SetButtonBackgroundColor(btn)
	c.SetButtonTextColor(tcell.ColorWhite)

	return c
}

// SetOnConfirm sets the callback for when user confirms.
func (c *Confirm) SetOnConfirm(fn ConfirmFunc) *Confirm {
	c.onConfirm = fn
	return c
}

// SetOnCancel sets the callback for when user cancels.
func (c *Confirm) SetOnCancel(fn func()) *Confirm {
	c.onCancel = fn
	return c
}

// Show adds the modal on top of the pages.
func (c *Confirm) Show() {
	if c.pages != nil {
		c.pages.AddPage(confirmPageID, c, true, true)
	}
}

// Dismiss removes the modal.
func (c *Confirm) Dismiss() {
	if c.pages != nil {
		c.pages.RemovePage(confirmPageID)
	}
}

// done runs on a button press or escape, which reports index -1.
func (c *Confirm) done(idx int, _ string) {
	c.Dismiss()
	c.confirmed = idx == 0
	switch {
	case c.confirmed && c.onConfirm != nil:
		c.onConfirm()
	case !c.confirmed && c.onCancel != nil:
		c.onCancel()
	}
}

// IsConfirmed returns true if user confirmed the action.
func (c *Confirm) IsConfirmed() bool {
	return c.confirmed
}

// ShowConfirm pops a dangerous confirmation with msg. ack runs on yes,
// cancel on no or escape.
func ShowConfirm(pages *Pages, msg string, ack ConfirmFunc, cancel func()) *Confirm {
	c := NewConfirm(pages).
		SetMessage(msg).
		SetDangerous(true).
		SetOnConfirm(ack).
		SetOnCancel(cancel)
	c.Show()

	return c
}
