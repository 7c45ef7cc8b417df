package dao

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/vdash/vdash/internal/model1"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// Fixtures returns the demo records keyed by resource kind.
func Fixtures() map[string]model1.Records {
	out, err := loadFixtures()
	if err != nil {
		panic(fmt.Errorf("corrupt embedded fixtures: %w", err))
	}
	return out
}

func loadFixtures() (map[string]model1.Records, error) {
	ee, err := fixtureFS.ReadDir("fixtures")
	if err != nil {
		return nil, err
	}
	out := make(map[string]model1.Records, len(ee))
	for _, e := range ee {
		bb, err := fixtureFS.ReadFile(path.Join("fixtures", e.Name()))
		if err != nil {
			return nil, err
		}
		var rr model1.Records
		if err := json.Unmarshal(bb, &rr); err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		out[strings.TrimSuffix(e.Name(), ".json")] = rr
	}
	return out, nil
}
