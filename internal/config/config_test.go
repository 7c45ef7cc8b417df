package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdash/vdash/internal/aws"
	"github.com/vdash/vdash/internal/config/data"
	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/model1"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fe criterio.FieldErrors
	require.True(t, errors.As(err, &fe), "expected field errors, got %v", err)
	nn := make([]string, 0, len(fe))
	for _, e := range fe {
		nn = append(nn, e.Field)
	}
	return nn
}

func TestConfigLoadMissing(t *testing.T) {
	c := NewConfig()
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, c.Load(path, false))
	assert.Equal(t, DefaultView, c.Vdash.DefaultView)
	assert.Error(t, c.Load(path, true))
}

func TestConfigLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
vdash:
  refreshRate: 2.5
  readOnly: true
  store:
    kind: sqlite
    path: /tmp/vdash.db
  views:
    customer:
      pageSize: 25
      sort: name:desc
`)

	c := NewConfig()
	require.NoError(t, c.Load(path, true))
	_, err := c.Refine(nil, nil)
	require.NoError(t, err)

	assert.True(t, c.Vdash.IsReadOnly())
	assert.Equal(t, 2500*time.Millisecond, c.Vdash.RefreshDuration())
	spec := c.StoreSpec()
	assert.Equal(t, dao.StoreSQLite, spec.Kind)
	assert.Equal(t, "/tmp/vdash.db", spec.Path)

	vs := c.Vdash.ViewSettings("customer")
	assert.Equal(t, 25, vs.PageSize)
	s, err := vs.SortState()
	require.NoError(t, err)
	assert.Equal(t, model1.SortState{Column: "name"}, s)
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c := NewConfig()
	c.Vdash.ReadOnly = true

	require.NoError(t, c.Save(path, false))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, c.Save(path, true))
	loaded := NewConfig()
	require.NoError(t, loaded.Load(path, true))
	assert.True(t, loaded.Vdash.ReadOnly)
	assert.Equal(t, []string{"avatar", "email"}, loaded.Vdash.ViewSettings("invoice").Hidden)
}

func TestVdashValidate(t *testing.T) {
	uu := map[string]struct {
		mutate func(*Vdash)
		fields []string
	}{
		"defaults": {
			mutate: func(*Vdash) {},
		},
		"negative-refresh": {
			mutate: func(v *Vdash) { v.RefreshRate = -1 },
			fields: []string{"refreshRate"},
		},
		"bad-level": {
			mutate: func(v *Vdash) { v.Logger.Level = "loud" },
			fields: []string{"logger.level"},
		},
		"unknown-store": {
			mutate: func(v *Vdash) { v.Store.Kind = "redis" },
			fields: []string{"store.kind"},
		},
		"s3-without-bucket": {
			mutate: func(v *Vdash) { v.Store.Kind = "s3" },
			fields: []string{"store.bucket"},
		},
		"bad-view": {
			mutate: func(v *Vdash) {
				v.Views["customer"] = data.View{PageSize: -2, Sort: "name:sideways"}
			},
			fields: []string{"views.customer.pageSize", "views.customer.sort"},
		},
		"several": {
			mutate: func(v *Vdash) {
				v.RefreshRate = -1
				v.Logger.Level = "loud"
			},
			fields: []string{"refreshRate", "logger.level"},
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			v := NewVdash()
			u.mutate(v)
			err := v.Validate()
			if len(u.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.ElementsMatch(t, u.fields, fieldNames(t, err))
		})
	}
}

func TestVdashValidateFillsDefaults(t *testing.T) {
	v := &Vdash{}
	require.NoError(t, v.Validate())

	assert.Equal(t, DefaultView, v.DefaultView)
	assert.Equal(t, DefaultLogLevel, v.Logger.Level)
	assert.Equal(t, string(dao.StoreMemory), v.Store.Kind)
	assert.Equal(t, 5, v.ViewSettings("invoice").PageSize)
}

func TestVdashOverride(t *testing.T) {
	v := NewVdash()
	v.ReadOnly = true

	rate, level, store, path := float32(3), "debug", "file", "/tmp/store"
	page, write := 50, true
	v.Override(&data.Flags{
		RefreshRate: &rate,
		LogLevel:    &level,
		Store:       &store,
		StorePath:   &path,
		PageSize:    &page,
		Write:       &write,
	})

	assert.False(t, v.IsReadOnly())
	assert.Equal(t, float32(3), v.RefreshRate)
	assert.Equal(t, "debug", v.Logger.Level)
	assert.Equal(t, dao.StoreSpec{Kind: dao.StoreFile, Path: "/tmp/store", Prefix: DefaultPrefix}, v.StoreSpec())
	assert.Equal(t, 50, v.ViewSettings("invoice").PageSize)
	assert.Equal(t, 50, v.ViewSettings("customer").PageSize)
}

func TestVdashOverrideKeepsUnsetFlags(t *testing.T) {
	v := NewVdash()
	v.Logger.Level = "warn"
	v.Override(&data.Flags{})

	assert.Equal(t, "warn", v.Logger.Level)
	assert.Equal(t, model1.DefaultPageSize, v.ViewSettings("customer").PageSize)
}

func TestVdashStoreSpecDefaultsPath(t *testing.T) {
	setLocs("/cfg", "/data", "/state")
	v := NewVdash()
	v.Store.Kind = "file"

	assert.Equal(t, filepath.Join("/data", AppName, "store"), v.StoreSpec().Path)
}

func TestRefineS3(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config", `
[default]
region = eu-west-1

[profile billing]
region = ap-south-1
`)
	credPath := writeFile(t, dir, "credentials", "")
	profiles := aws.NewProfileDiscoveryAt(credPath, cfgPath)

	uu := map[string]struct {
		profile, region string
		cc              *aws.ClientConfig
		err             bool
	}{
		"profile-region": {
			profile: "billing",
			cc:      &aws.ClientConfig{Profile: "billing", Region: "ap-south-1", Timeout: DefaultAPITimeout},
		},
		"explicit-region": {
			profile: "billing",
			region:  "us-west-2",
			cc:      &aws.ClientConfig{Profile: "billing", Region: "us-west-2", Timeout: DefaultAPITimeout},
		},
		"unknown-profile": {
			profile: "nope",
			err:     true,
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			c := NewConfig()
			c.Vdash.Store = data.Store{Kind: "s3", Bucket: "vdash-data", Profile: u.profile, Region: u.region}

			cc, err := c.Refine(nil, profiles)
			if u.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.cc, cc)
		})
	}
}

func TestRefineNonS3(t *testing.T) {
	c := NewConfig()
	cc, err := c.Refine(nil, nil)

	require.NoError(t, err)
	assert.Nil(t, cc)
}

func TestAliases(t *testing.T) {
	a := NewAliases()
	path := writeFile(t, t.TempDir(), "aliases.yaml", `
aliases:
  Bills: /apps/invoice/list
  cust: /apps/customer/details/c-1001
`)
	require.NoError(t, a.LoadFrom(path))

	uu := map[string]struct {
		cmd, target string
	}{
		"builtin":    {cmd: "inv", target: "/apps/invoice/list"},
		"case":       {cmd: " INVOICE ", target: "/apps/invoice/list"},
		"file":       {cmd: "bills", target: "/apps/invoice/list"},
		"overridden": {cmd: "cust", target: "/apps/customer/details/c-1001"},
		"raw-route":  {cmd: "/apps/invoice/details/3", target: "/apps/invoice/details/3"},
		"help":       {cmd: "?", target: TargetHelp},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.target, a.Resolve(u.cmd))
		})
	}
	assert.Contains(t, a.Names(), "bills")
}

func TestAliasesMissingFile(t *testing.T) {
	a := NewAliases()
	require.NoError(t, a.LoadFrom(filepath.Join(t.TempDir(), "none.yaml")))
	assert.Equal(t, len(DefaultAliases), len(a.All()))
}

func TestHotKeys(t *testing.T) {
	dir := t.TempDir()

	h := NewHotKeys()
	ok := writeFile(t, dir, "ok.yaml", `
hotKeys:
  dash:
    shortCut: Shift-D
    description: Dashboard
    command: dash
`)
	require.NoError(t, h.LoadFrom(ok))
	assert.Equal(t, []string{"dash"}, h.Names())
	assert.Equal(t, "dash", h.Get("dash").Command)
	assert.Nil(t, h.Get("nope"))

	bad := writeFile(t, dir, "bad.yaml", `
hotKeys:
  broken:
    description: no keys
`)
	err := NewHotKeys().LoadFrom(bad)
	assert.ElementsMatch(t, []string{"hotKeys.broken.shortCut", "hotKeys.broken.command"}, fieldNames(t, err))
}
