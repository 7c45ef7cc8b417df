package config

import (
	"sort"
	"strings"
	"sync"

	"github.com/vdash/vdash/internal/config/data"
	"github.com/vdash/vdash/internal/nav"
)

// Command targets that are screens rather than routes.
const (
	TargetMenu    = "menu"
	TargetHelp    = "help"
	TargetQuit    = "quit"
	TargetProfile = "profile"
)

// Aliases represents the alias configuration.
type Aliases struct {
	Alias map[string]string `yaml:"aliases"`
	mx    sync.RWMutex      `yaml:"-"`
}

// DefaultAliases maps command shortcuts to navigation targets.
var DefaultAliases = map[string]string{
	"invoice":  nav.RouteInvoiceList,
	"invoices": nav.RouteInvoiceList,
	"inv":      nav.RouteInvoiceList,
	"quote":    nav.RouteInvoiceList,
	"new":      nav.RouteInvoiceNew,

	"customer":  nav.RouteCustomerList,
	"customers": nav.RouteCustomerList,
	"cust":      nav.RouteCustomerList,
	"vendor":    nav.RouteCustomerList,

	"dashboard": nav.RouteDashboard,
	"dash":      nav.RouteDashboard,
	"home":      nav.RouteDashboard,
	"pay":       nav.RouteCharts,

	"profile":  TargetProfile,
	"profiles": TargetProfile,
	"aws":      TargetProfile,

	"menu": TargetMenu,
	"help": TargetHelp,
	"?":    TargetHelp,
	"q":    TargetQuit,
	"quit": TargetQuit,
	"q!":   TargetQuit,
}

// NewAliases creates an Aliases with default aliases loaded.
func NewAliases() *Aliases {
	a := Aliases{Alias: make(map[string]string, len(DefaultAliases))}
	for k, v := range DefaultAliases {
		a.Alias[k] = v
	}
	return &a
}

// Load loads aliases from the default config file.
func (a *Aliases) Load() error {
	return a.LoadFrom(AppAliasesFile)
}

// LoadFrom merges aliases from path, file aliases taking precedence. A
// missing file keeps the defaults.
func (a *Aliases) LoadFrom(path string) error {
	var loaded Aliases
	if _, err := data.LoadOptionalYAML(path, &loaded); err != nil {
		return err
	}
	a.Merge(&loaded)

	return nil
}

// SaveTo saves aliases to a specific file path.
func (a *Aliases) SaveTo(path string) error {
	a.mx.RLock()
	defer a.mx.RUnlock()

	return data.SaveYAML(path, a)
}

// Merge merges another Aliases into this one.
// Keys in other override existing keys.
func (a *Aliases) Merge(other *Aliases) {
	a.mx.Lock()
	defer a.mx.Unlock()

	other.mx.RLock()
	defer other.mx.RUnlock()

	for k, v := range other.Alias {
		a.Alias[strings.ToLower(k)] = v
	}
}

// Get returns the target for an alias and whether it was known.
func (a *Aliases) Get(alias string) (string, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()

	target, ok := a.Alias[strings.ToLower(strings.TrimSpace(alias))]
	return target, ok
}

// Resolve returns the target for a command. Unknown commands are taken
// to be targets themselves, e.g. /apps/invoice/details/3.
func (a *Aliases) Resolve(cmd string) string {
	if target, ok := a.Get(cmd); ok {
		return target
	}
	return strings.TrimSpace(cmd)
}

// Set sets an alias.
func (a *Aliases) Set(alias, target string) {
	a.mx.Lock()
	defer a.mx.Unlock()

	a.Alias[strings.ToLower(alias)] = target
}

// Names returns all alias names sorted, for command completion.
func (a *Aliases) Names() []string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	nn := make([]string, 0, len(a.Alias))
	for k := range a.Alias {
		nn = append(nn, k)
	}
	sort.Strings(nn)
	return nn
}

// All returns a copy of all aliases.
func (a *Aliases) All() map[string]string {
	a.mx.RLock()
	defer a.mx.RUnlock()

	out := make(map[string]string, len(a.Alias))
	for k, v := range a.Alias {
		out[k] = v
	}
	return out
}
