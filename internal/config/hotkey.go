package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hay-kot/criterio"

	"github.com/vdash/vdash/internal/config/data"
)

// HotKey binds a shortcut to a command.
type HotKey struct {
	ShortCut    string `yaml:"shortCut"`
	Description string `yaml:"description"`
	Command     string `yaml:"command"`
}

// HotKeys represents the hotkeys configuration.
type HotKeys struct {
	HotKey map[string]HotKey `yaml:"hotKeys"`
	mx     sync.RWMutex      `yaml:"-"`
}

// NewHotKeys creates an empty HotKeys configuration.
func NewHotKeys() *HotKeys {
	return &HotKeys{
		HotKey: make(map[string]HotKey),
	}
}

// Load loads hotkeys from the default config file.
func (h *HotKeys) Load() error {
	return h.LoadFrom(AppHotkeysFile)
}

// LoadFrom loads hotkeys from a specific file path. A missing file
// leaves the set empty.
func (h *HotKeys) LoadFrom(path string) error {
	h.mx.Lock()
	defer h.mx.Unlock()

	if _, err := data.LoadOptionalYAML(path, h); err != nil {
		return err
	}
	if h.HotKey == nil {
		h.HotKey = make(map[string]HotKey)
	}

	return h.validate()
}

func (h *HotKeys) validate() error {
	var errs criterio.FieldErrorsBuilder
	for _, name := range h.names() {
		hk := h.HotKey[name]
		if hk.ShortCut == "" {
			errs = errs.Append("hotKeys."+name+".shortCut", fmt.Errorf("is required"))
		}
		if hk.Command == "" {
			errs = errs.Append("hotKeys."+name+".command", fmt.Errorf("is required"))
		}
	}
	return errs.ToError()
}

// Get returns a hotkey by name, or nil if not found.
func (h *HotKeys) Get(name string) *HotKey {
	h.mx.RLock()
	defer h.mx.RUnlock()

	hk, ok := h.HotKey[name]
	if !ok {
		return nil
	}

	return &hk
}

// Set sets a hotkey by name.
func (h *HotKeys) Set(name string, hk HotKey) {
	h.mx.Lock()
	defer h.mx.Unlock()

	h.HotKey[name] = hk
}

// Names returns all hotkey names sorted.
func (h *HotKeys) Names() []string {
	h.mx.RLock()
	defer h.mx.RUnlock()

	return h.names()
}

func (h *HotKeys) names() []string {
	names := make([]string, 0, len(h.HotKey))
	for name := range h.HotKey {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
