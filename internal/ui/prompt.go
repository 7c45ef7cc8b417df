package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const promptPageID = "prompt"

// Prompt is a one line input shown over the current page, used for
// field filter expressions.
type Prompt struct {
	*tview.InputField

	pages    *Pages
	doneFn   func(string)
	cancelFn func()
}

// NewPrompt returns a prompt labelled label.
func NewPrompt(pages *Pages, label string) *Prompt {
	p := Prompt{
		InputField: tview.NewInputField(),
		pages:      pages,
	}
	p.SetLabel(label + " ")
	p.SetBorder(true)
	p.SetBorderColor(tcell.ColorDarkCyan)
	p.SetFieldBackgroundColor(tcell.ColorDefault)
	p.SetBackgroundColor(tcell.ColorDefault)
	p.SetDoneFunc(p.done)

	return &p
}

// SetDoneFn sets the callback receiving the entered text.
func (p *Prompt) SetDoneFn(fn func(string)) *Prompt {
	p.doneFn = fn
	return p
}

// SetCancelFn sets the callback for escape.
func (p *Prompt) SetCancelFn(fn func()) *Prompt {
	p.cancelFn = fn
	return p
}

// SetPlaceholderText shows a hint while empty.
func (p *Prompt) SetPlaceholderText(s string) *Prompt {
	p.SetPlaceholder(s)
	return p
}

// Show overlays the prompt at the top of the pages.
func (p *Prompt) Show() {
	if p.pages == nil {
		return
	}
	modal := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(p, 3, 0, true).
		AddItem(nil, 0, 1, false)
	p.pages.AddPage(promptPageID, modal, true, true)
}

// Dismiss removes the prompt.
func (p *Prompt) Dismiss() {
	if p.pages != nil {
		p.pages.RemovePage(promptPageID)
	}
}

func (p *Prompt) done(key tcell.Key) {
	p.Dismiss()
	switch key {
	case tcell.KeyEnter:
		if p.doneFn != nil {
			p.doneFn(p.GetText())
		}
	case tcell.KeyEsc:
		if p.cancelFn != nil {
			p.cancelFn()
		}
	}
}
