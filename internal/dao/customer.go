package dao

import (
	"context"
	"fmt"

	"github.com/vdash/vdash/internal/form"
	"github.com/vdash/vdash/internal/model1"
)

func init() {
	RegisterAccessor(&CustomerRID, func() Accessor { return new(Customer) })
}

// Customer is the DAO for vendor customers.
type Customer struct {
	Resource
}

// Save validates the record against the customer schema before storing it.
func (c *Customer) Save(ctx context.Context, rec model1.Record) (model1.Record, error) {
	if err := form.ValidateRecord(form.CustomerSchema(), rec); err != nil {
		return nil, fmt.Errorf("invalid customer: %w", err)
	}
	return c.Resource.Save(ctx, rec)
}
