package nav

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a menu from a yaml file. A missing file yields the vendor
// menu.
func Load(path string) (Menu, error) {
	bb, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return VendorMenu(), nil
	}
	if err != nil {
		return Menu{}, err
	}
	return Parse(bb)
}

// Parse decodes and validates a yaml menu.
func Parse(bb []byte) (Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(bb, &m); err != nil {
		return Menu{}, fmt.Errorf("menu: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Menu{}, fmt.Errorf("menu: %w", err)
	}
	return m, nil
}
