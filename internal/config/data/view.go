package data

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/vdash/vdash/internal/model1"
)

// View holds the list settings of one resource.
type View struct {
	PageSize int      `yaml:"pageSize,omitempty"`
	Hidden   []string `yaml:"hidden,omitempty"`
	Sort     string   `yaml:"sort,omitempty"`
}

// SortState parses the sort spec "field[:asc|:desc]".
func (v View) SortState() (model1.SortState, error) {
	return ParseSort(v.Sort)
}

// Validate checks the page size and sort spec.
func (v View) Validate(prefix string) error {
	return criterio.ValidateStruct(
		criterio.Run(prefix+".pageSize", v.PageSize, validPageSize),
		criterio.Run(prefix+".sort", v.Sort, func(s string) error {
			_, err := ParseSort(s)
			return err
		}),
	)
}

func validPageSize(n int) error {
	if n < 0 {
		return fmt.Errorf("must not be negative, got %d", n)
	}
	return nil
}

// ParseSort parses "field", "field:asc" or "field:desc". An empty spec
// means no sort.
func ParseSort(s string) (model1.SortState, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model1.SortState{}, nil
	}
	field, dir, _ := strings.Cut(s, ":")
	if field == "" {
		return model1.SortState{}, fmt.Errorf("invalid sort %q", s)
	}
	switch strings.ToLower(dir) {
	case "", "asc":
		return model1.SortState{Column: field, Asc: true}, nil
	case "desc":
		return model1.SortState{Column: field}, nil
	default:
		return model1.SortState{}, fmt.Errorf("invalid sort direction %q", dir)
	}
}
