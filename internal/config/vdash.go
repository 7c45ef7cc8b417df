package config

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/vdash/vdash/internal/config/data"
	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model1"
)

// Default values
const (
	DefaultView   = "invoice"
	DefaultPrefix = "vdash"
)

// Vdash represents the vdash global configuration.
type Vdash struct {
	RefreshRate float32              `yaml:"refreshRate"`
	ReadOnly    bool                 `yaml:"readOnly"`
	DefaultView string               `yaml:"defaultView"`
	UI          data.UI              `yaml:"ui"`
	Logger      data.Logger          `yaml:"logger"`
	Store       data.Store           `yaml:"store"`
	Views       map[string]data.View `yaml:"views,omitempty"`

	pageSize int
	mx       sync.RWMutex
}

// NewVdash creates a Vdash with default settings.
func NewVdash() *Vdash {
	return &Vdash{
		RefreshRate: DefaultRefreshRate,
		DefaultView: DefaultView,
		Logger:      data.Logger{Level: DefaultLogLevel},
		Store:       data.Store{Kind: string(dao.StoreMemory), Prefix: DefaultPrefix},
		Views:       DefaultViews(),
	}
}

// DefaultViews returns the built-in list settings. Invoices show five
// rows per page with the avatar and email columns hidden.
func DefaultViews() map[string]data.View {
	return map[string]data.View{
		dao.InvoiceRID.Resource: {PageSize: 5, Hidden: []string{"avatar", "email"}},
	}
}

// Validate fills in defaults then reports every invalid setting at once.
func (v *Vdash) Validate() error {
	v.mx.Lock()
	defer v.mx.Unlock()

	if v.DefaultView == "" {
		v.DefaultView = DefaultView
	}
	if v.Logger.Level == "" {
		v.Logger.Level = DefaultLogLevel
	}
	if v.Store.Kind == "" {
		v.Store.Kind = string(dao.StoreMemory)
	}
	if v.Views == nil {
		v.Views = DefaultViews()
	}

	errs := []error{
		criterio.Run("refreshRate", v.RefreshRate, func(r float32) error {
			if r < 0 {
				return fmt.Errorf("must not be negative")
			}
			return nil
		}),
		criterio.Run("logger.level", v.Logger.Level, func(l string) error {
			if !slices.Contains([]string{"trace", "debug", "info", "warn", "error"}, l) {
				return fmt.Errorf("unknown level %q", l)
			}
			return nil
		}),
		v.validateStore(),
	}
	for _, name := range sortedViews(v.Views) {
		errs = append(errs, v.Views[name].Validate("views."+name))
	}

	return criterio.ValidateStruct(errs...)
}

func (v *Vdash) validateStore() error {
	var errs criterio.FieldErrorsBuilder
	kind := dao.StoreKind(v.Store.Kind)
	if !slices.Contains(dao.StoreKinds, kind) {
		errs = errs.Append("store.kind", fmt.Errorf("unknown store %q, expected one of %v", v.Store.Kind, dao.StoreKinds))
	}
	if kind == dao.StoreS3 && v.Store.Bucket == "" {
		errs = errs.Append("store.bucket", fmt.Errorf("required for the s3 store"))
	}

	return errs.ToError()
}

// Override applies CLI flag overrides to the configuration.
func (v *Vdash) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	v.mx.Lock()
	defer v.mx.Unlock()

	if flags.RefreshRate != nil {
		v.RefreshRate = *flags.RefreshRate
	}
	if flags.ReadOnly != nil {
		v.ReadOnly = *flags.ReadOnly
	}
	// Write flag overrides ReadOnly
	if IsBoolSet(flags.Write) {
		v.ReadOnly = false
	}
	if IsStringSet(flags.LogLevel) {
		v.Logger.Level = *flags.LogLevel
	}
	if IsStringSet(flags.LogFile) {
		v.Logger.File = *flags.LogFile
	}
	if IsStringSet(flags.Command) {
		v.DefaultView = *flags.Command
	}
	if IsStringSet(flags.Store) {
		v.Store.Kind = *flags.Store
	}
	if IsStringSet(flags.StorePath) {
		v.Store.Path = *flags.StorePath
	}
	if IsStringSet(flags.Bucket) {
		v.Store.Bucket = *flags.Bucket
	}
	if IsStringSet(flags.Profile) {
		v.Store.Profile = *flags.Profile
	}
	if IsStringSet(flags.Region) {
		v.Store.Region = *flags.Region
	}
	if IsIntSet(flags.PageSize) {
		v.pageSize = *flags.PageSize
	}
}

// RefreshDuration returns the refresh rate, zero when disabled.
func (v *Vdash) RefreshDuration() time.Duration {
	v.mx.RLock()
	defer v.mx.RUnlock()

	return time.Duration(float64(v.RefreshRate) * float64(time.Second))
}

// IsReadOnly returns true if writes are disabled.
func (v *Vdash) IsReadOnly() bool {
	v.mx.RLock()
	defer v.mx.RUnlock()

	return v.ReadOnly
}

// ViewSettings returns the list settings for resource with defaults
// applied. A page size flag wins over the file.
func (v *Vdash) ViewSettings(resource string) data.View {
	v.mx.RLock()
	defer v.mx.RUnlock()

	vs := v.Views[resource]
	if vs.PageSize == 0 {
		vs.PageSize = model1.DefaultPageSize
	}
	if v.pageSize > 0 {
		vs.PageSize = v.pageSize
	}

	return vs
}

// StoreSpec returns the store selection, defaulting paths under the
// data dir.
func (v *Vdash) StoreSpec() dao.StoreSpec {
	v.mx.RLock()
	defer v.mx.RUnlock()

	spec := dao.StoreSpec{
		Kind:   dao.StoreKind(v.Store.Kind),
		Path:   v.Store.Path,
		Bucket: v.Store.Bucket,
		Prefix: v.Store.Prefix,
	}
	if spec.Path == "" && (spec.Kind == dao.StoreFile || spec.Kind == dao.StoreSQLite) {
		spec.Path = AppStoreDir
	}

	return spec
}

func sortedViews(m map[string]data.View) []string {
	kk := make([]string, 0, len(m))
	for k := range m {
		kk = append(kk, k)
	}
	slices.Sort(kk)
	return kk
}
