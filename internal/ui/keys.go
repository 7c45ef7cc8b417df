package ui

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/derailed/tcell/v2"
)

// Rune keys, expressed as tcell keys so they can share a KeyMap with
// the special keys.
const (
	KeySpace       tcell.Key = ' '
	KeySlash       tcell.Key = '/'
	KeyColon       tcell.Key = ':'
	KeyQuestion    tcell.Key = '?'
	KeyLeftSquare  tcell.Key = '['
	KeyRightSquare tcell.Key = ']'
	Key0           tcell.Key = '0'
	Key1           tcell.Key = '1'
	Key9           tcell.Key = '9'
	KeyA           tcell.Key = 'a'
	KeyC           tcell.Key = 'c'
	KeyD           tcell.Key = 'd'
	KeyE           tcell.Key = 'e'
	KeyF           tcell.Key = 'f'
	KeyG           tcell.Key = 'g'
	KeyJ           tcell.Key = 'j'
	KeyK           tcell.Key = 'k'
	KeyN           tcell.Key = 'n'
	KeyO           tcell.Key = 'o'
	KeyP           tcell.Key = 'p'
	KeyQ           tcell.Key = 'q'
	KeyR           tcell.Key = 'r'
	KeyV           tcell.Key = 'v'
	KeyW           tcell.Key = 'w'
	KeyX           tcell.Key = 'x'
	KeyY           tcell.Key = 'y'
	KeyShiftG      tcell.Key = 'G'
)

// ActionHandler handles a keyboard command.
type ActionHandler func(*tcell.EventKey) *tcell.EventKey

// KeyAction represents a keyboard action.
type KeyAction struct {
	Description string
	Action      ActionHandler
	Visible     bool
}

// NewKeyAction returns a new keyboard action.
func NewKeyAction(d string, a ActionHandler, display bool) KeyAction {
	return KeyAction{Description: d, Action: a, Visible: display}
}

// KeyMap tracks key to action mappings.
type KeyMap map[tcell.Key]KeyAction

// KeyActions tracks the actions bound to a component.
type KeyActions struct {
	actions KeyMap
	mx      sync.RWMutex
}

// NewKeyActions returns an empty action set.
func NewKeyActions() *KeyActions {
	return &KeyActions{actions: make(KeyMap)}
}

// Add binds an action to a key.
func (a *KeyActions) Add(k tcell.Key, ka KeyAction) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.actions[k] = ka
}

// Bulk binds several actions at once.
func (a *KeyActions) Bulk(km KeyMap) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for k, v := range km {
		a.actions[k] = v
	}
}

// Get returns the action bound to a key.
func (a *KeyActions) Get(k tcell.Key) (KeyAction, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	v, ok := a.actions[k]
	return v, ok
}

// Delete unbinds keys.
func (a *KeyActions) Delete(kk ...tcell.Key) {
	a.mx.Lock()
	defer a.mx.Unlock()

	for _, k := range kk {
		delete(a.actions, k)
	}
}

// Len returns the number of bound keys.
func (a *KeyActions) Len() int {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return len(a.actions)
}

// Hints returns the visible actions as menu hints.
func (a *KeyActions) Hints() MenuHints {
	a.mx.RLock()
	defer a.mx.RUnlock()

	kk := make([]tcell.Key, 0, len(a.actions))
	for k := range a.actions {
		kk = append(kk, k)
	}
	sort.Slice(kk, func(i, j int) bool { return kk[i] < kk[j] })

	hh := make(MenuHints, 0, len(kk))
	for _, k := range kk {
		v := a.actions[k]
		hh = append(hh, MenuHint{
			Mnemonic:    KeyName(k),
			Description: v.Description,
			Visible:     v.Visible,
		})
	}

	return hh
}

// Dispatch runs the action bound to the event, if any. Rune events are
// looked up by rune.
func (a *KeyActions) Dispatch(evt *tcell.EventKey) (*tcell.EventKey, bool) {
	key := AsKey(evt)
	ka, ok := a.Get(key)
	if !ok || ka.Action == nil {
		return evt, false
	}

	return ka.Action(evt), true
}

// AsKey converts rune events to keys.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() != tcell.KeyRune {
		return evt.Key()
	}
	return tcell.Key(evt.Rune())
}

// KeyName returns the display name of a key.
func KeyName(k tcell.Key) string {
	if name, ok := tcell.KeyNames[k]; ok {
		return name
	}
	if k == KeySpace {
		return "space"
	}
	return string(rune(k))
}

// ParseKey maps a key name such as "Ctrl-E", "Shift-A" or "x" to a key.
func ParseKey(s string) (tcell.Key, error) {
	s = strings.TrimSpace(s)
	if rr := []rune(s); len(rr) == 1 {
		return tcell.Key(rr[0]), nil
	}
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "shift-"); ok {
		if rr := []rune(rest); len(rr) == 1 {
			return tcell.Key(unicode.ToUpper(rr[0])), nil
		}
	}
	if strings.EqualFold(s, "space") {
		return KeySpace, nil
	}
	for k, name := range tcell.KeyNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown key %q", s)
}
