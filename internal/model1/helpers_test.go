package model1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	uu := map[string]struct {
		kind   Kind
		v1, v2 string
		e      int
	}{
		"number":        {kind: KindNumber, v1: "9", v2: "10", e: -1},
		"number-commas": {kind: KindNumber, v1: "1,200", v2: "₹ 900", e: 1},
		"number-equal":  {kind: KindNumber, v1: "10", v2: "10.0", e: 0},
		"number-bad":    {kind: KindNumber, v1: "n/a", v2: "3", e: 1},
		"date":          {kind: KindDate, v1: "2024-01-02", v2: "2023-12-31", e: 1},
		"date-layouts":  {kind: KindDate, v1: "01/02/2024", v2: "2024-01-02", e: 0},
		"text":          {kind: KindText, v1: "item9", v2: "item10", e: -1},
		"text-equal":    {kind: KindText, v1: "a", v2: "a", e: 0},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, u.e, Compare(u.kind, u.v1, u.v2))
		})
	}
}

func TestRecordLookup(t *testing.T) {
	r := Record{
		"id":   float64(7),
		"name": "Acme",
		"bank": map[string]any{"ifsc": "SBIN0001", "branch": map[string]any{"city": "Chennai"}},
		"tags": []any{"a", "b"},
	}

	assert.Equal(t, "7", r.ID())
	assert.Equal(t, "SBIN0001", r.String("bank.ifsc"))
	assert.Equal(t, "Chennai", r.String("bank.branch.city"))
	assert.Equal(t, "a, b", r.String("tags"))
	assert.Equal(t, "", r.String("bank.nope"))
	assert.Equal(t, "", r.String("name.deeper"))

	c := r.Clone()
	c["bank"].(map[string]any)["ifsc"] = "X"
	assert.Equal(t, "SBIN0001", r.String("bank.ifsc"))
}
