// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of vdash

package ui

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/fvbommel/sortorder"
)

// IndicatorMode is the input mode of the command bar.
type IndicatorMode int

const (
	// ModeNormal shows the idle prompt.
	ModeNormal IndicatorMode = iota
	// ModeCommand reads a command after `:`.
	ModeCommand
	// ModeSearch filters the current list after `/`.
	ModeSearch
)

const maxHistory = 20

var modePrompts = map[IndicatorMode]string{
	ModeNormal:  "🧾>",
	ModeCommand: "🧾:",
	ModeSearch:  "🔍/",
}

// History keeps the most recent entries first, without duplicates.
type History struct {
	entries []string
	limit   int
}

// NewHistory returns a history of at most limit entries.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Push records s as the latest entry.
func (h *History) Push(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if i := slices.Index(h.entries, s); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}
	h.entries = slices.Insert(h.entries, 0, s)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// At returns entry i, 0 being the latest.
func (h *History) At(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// CmdBar reads commands and search text. Commands complete against the
// known aliases; search text is pushed to the list as it is typed.
type CmdBar struct {
	*tview.TextView

	mode       IndicatorMode
	active     bool
	text       []rune
	matches    []string
	matchIdx   int
	histIdx    int
	history    map[IndicatorMode]*History
	commands   []string
	filterText string

	cmdFn    func(string)
	filterFn func(string)
	cancelFn func()
	activeFn func(bool)

	mx sync.RWMutex
}

// NewCmdBar returns an idle command bar.
func NewCmdBar() *CmdBar {
	c := CmdBar{
		TextView: tview.NewTextView(),
		histIdx:  -1,
		history: map[IndicatorMode]*History{
			ModeCommand: NewHistory(maxHistory),
			ModeSearch:  NewHistory(maxHistory),
		},
	}
	c.SetBorder(true)
	c.SetBorderColor(tcell.ColorDarkCyan)
	c.SetBackgroundColor(tcell.ColorDefault)
	c.SetTextColor(tcell.ColorWhite)
	c.SetDynamicColors(true)
	c.SetWrap(false)
	c.SetInputCapture(c.keyboard)
	c.render()

	return &c
}

func (c *CmdBar) keyboard(evt *tcell.EventKey) *tcell.EventKey {
	if !c.IsActive() {
		return evt
	}

	switch evt.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		c.edit(func(rr []rune) []rune {
			if len(rr) == 0 {
				return rr
			}
			return rr[:len(rr)-1]
		})
	case tcell.KeyCtrlU, tcell.KeyCtrlW:
		c.edit(func(rr []rune) []rune { return rr[:0] })
	case tcell.KeyRune:
		c.edit(func(rr []rune) []rune { return append(rr, evt.Rune()) })
	case tcell.KeyTab, tcell.KeyRight:
		if s := c.Suggestion(); s != "" {
			c.SetText(s)
		}
	case tcell.KeyUp:
		c.cycle(-1)
	case tcell.KeyDown:
		c.cycle(1)
	case tcell.KeyEnter:
		c.execute()
	case tcell.KeyEsc:
		c.cancel()
	default:
		return evt
	}

	return nil
}

// edit applies fn to the input then refreshes completions and search.
func (c *CmdBar) edit(fn func([]rune) []rune) {
	c.mx.Lock()
	c.text = fn(c.text)
	c.histIdx = -1
	c.mx.Unlock()

	c.complete()
	c.render()
	if c.Mode() == ModeSearch && c.filterFn != nil {
		c.filterFn(c.GetText())
	}
}

// cycle walks the completions when there are any, else the history of
// the current mode.
func (c *CmdBar) cycle(dir int) {
	c.mx.Lock()
	if n := len(c.matches); n > 1 {
		c.matchIdx = (c.matchIdx + dir + n) % n
		c.mx.Unlock()
		c.render()
		return
	}
	h := c.history[c.mode]
	var (
		entry string
		ok    bool
	)
	if h != nil {
		entry, ok = h.At(c.histIdx - dir)
	}
	if ok {
		c.histIdx -= dir
		c.text = []rune(entry)
		c.matches = nil
	}
	c.mx.Unlock()
	c.render()
}

// Suggestions returns the commands starting with text, in natural order.
func (c *CmdBar) Suggestions(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	c.mx.RLock()
	defer c.mx.RUnlock()

	var out []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, text) && cmd != text {
			out = append(out, cmd)
		}
	}
	return out
}

// Suggestion returns the completion currently offered, if any.
func (c *CmdBar) Suggestion() string {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if c.matchIdx < 0 || c.matchIdx >= len(c.matches) {
		return ""
	}
	return c.matches[c.matchIdx]
}

func (c *CmdBar) complete() {
	var mm []string
	if c.Mode() == ModeCommand {
		mm = c.Suggestions(c.GetText())
	}
	c.mx.Lock()
	c.matches, c.matchIdx = mm, 0
	c.mx.Unlock()
}

func (c *CmdBar) render() {
	c.mx.RLock()
	text := string(c.text)
	prompt := modePrompts[c.mode]
	var ghost string
	if c.matchIdx >= 0 && c.matchIdx < len(c.matches) {
		ghost = strings.TrimPrefix(c.matches[c.matchIdx], text)
	}
	c.mx.RUnlock()

	c.Clear()
	_, _ = fmt.Fprintf(c.TextView, "%s [::b]%s[gray::]%s[-::]", prompt, tview.Escape(text), ghost)
}

// SetCommands replaces the completion candidates.
func (c *CmdBar) SetCommands(cmds []string) {
	cc := slices.Clone(cmds)
	slices.SortFunc(cc, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case sortorder.NaturalLess(a, b):
			return -1
		default:
			return 1
		}
	})

	c.mx.Lock()
	defer c.mx.Unlock()
	c.commands = slices.Compact(cc)
}

// GetText returns the current input.
func (c *CmdBar) GetText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return string(c.text)
}

// SetText replaces the input.
func (c *CmdBar) SetText(s string) {
	c.mx.Lock()
	c.text = []rune(s)
	c.matches = nil
	c.mx.Unlock()
	c.render()
}

// Activate starts reading input in mode.
func (c *CmdBar) Activate(mode IndicatorMode) {
	c.mx.Lock()
	c.mode, c.active = mode, true
	c.text, c.matches, c.histIdx = c.text[:0], nil, -1
	c.mx.Unlock()
	c.render()

	if c.activeFn != nil {
		c.activeFn(true)
	}
}

// Deactivate returns to the idle prompt.
func (c *CmdBar) Deactivate() {
	c.mx.Lock()
	c.mode, c.active = ModeNormal, false
	c.text, c.matches, c.histIdx = c.text[:0], nil, -1
	c.mx.Unlock()
	c.render()

	if c.activeFn != nil {
		c.activeFn(false)
	}
}

func (c *CmdBar) execute() {
	text, mode := c.GetText(), c.Mode()
	c.mx.Lock()
	if h := c.history[mode]; h != nil {
		h.Push(text)
	}
	if mode == ModeSearch {
		c.filterText = text
	}
	c.mx.Unlock()

	if mode == ModeCommand && text != "" && c.cmdFn != nil {
		c.cmdFn(":" + text)
	}
	c.Deactivate()
}

func (c *CmdBar) cancel() {
	if c.Mode() == ModeSearch && c.cancelFn != nil {
		c.cancelFn()
	}
	c.Deactivate()
}

// IsActive returns true while input is being read.
func (c *CmdBar) IsActive() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.active
}

// Mode returns the current mode.
func (c *CmdBar) Mode() IndicatorMode {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.mode
}

// History returns the history of mode.
func (c *CmdBar) History(mode IndicatorMode) *History {
	return c.history[mode]
}

// SetCommandFn sets the command callback.
func (c *CmdBar) SetCommandFn(fn func(string)) {
	c.cmdFn = fn
}

// SetFilterFn sets the callback receiving search text as it is typed.
func (c *CmdBar) SetFilterFn(fn func(string)) {
	c.filterFn = fn
}

// SetCancelFn sets the callback of an aborted search.
func (c *CmdBar) SetCancelFn(fn func()) {
	c.cancelFn = fn
}

// SetActiveFn sets the callback for activation changes.
func (c *CmdBar) SetActiveFn(fn func(bool)) {
	c.activeFn = fn
}

// GetFilterText returns the last confirmed search.
func (c *CmdBar) GetFilterText() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.filterText
}

// ClearFilter drops the confirmed search.
func (c *CmdBar) ClearFilter() {
	c.mx.Lock()
	c.filterText = ""
	c.mx.Unlock()
	if c.filterFn != nil {
		c.filterFn("")
	}
}
