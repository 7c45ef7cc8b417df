package dao

import (
	"context"
	"strconv"
	"time"

	"github.com/vdash/vdash/internal/model1"
)

func init() {
	RegisterAccessor(&InvoiceRID, func() Accessor { return new(Invoice) })
}

// Invoice statuses.
const (
	InvoicePaid      = "Paid"
	InvoiceUnpaid    = "Unpaid"
	InvoiceCancelled = "Cancelled"
	InvoiceOverdue   = "Overdue"
)

// Invoice is the DAO for invoices.
type Invoice struct {
	Resource
}

// Widget summarizes invoices in one status bucket.
type Widget struct {
	Title  string
	Count  int
	Amount float64
}

// Save stores an invoice. New invoices are numbered after the highest
// existing id.
func (i *Invoice) Save(ctx context.Context, rec model1.Record) (model1.Record, error) {
	if rec.ID() != "" {
		return i.Resource.Save(ctx, rec)
	}
	rr, err := i.LoadList(ctx)
	if err != nil {
		return nil, err
	}

	return i.save(ctx, rec, func() string { return strconv.Itoa(NextID(rr)) })
}

// NextID returns one past the highest numeric record id.
func NextID(rr model1.Records) int {
	next := 1
	for _, r := range rr {
		if n, err := strconv.Atoi(r.ID()); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}

// Summary loads all invoices and returns the Paid, Unpaid and Overdue cards.
func (i *Invoice) Summary(ctx context.Context, now time.Time) ([]Widget, error) {
	rr, err := i.LoadList(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(rr, now), nil
}

// Summarize buckets invoices by status. An unpaid invoice whose due
// date lies before now also counts as overdue.
func Summarize(rr model1.Records, now time.Time) []Widget {
	ww := []Widget{{Title: InvoicePaid}, {Title: InvoiceUnpaid}, {Title: InvoiceOverdue}}
	today := now.Format(model1.DateLayout)
	for _, r := range rr {
		amount, _ := model1.ParseNumber(r.String("amount"))
		switch r.String("status") {
		case InvoicePaid:
			ww[0].Count++
			ww[0].Amount += amount
		case InvoiceUnpaid:
			ww[1].Count++
			ww[1].Amount += amount
			if due := r.String("due_date"); due != "" && model1.Compare(model1.KindDate, due, today) < 0 {
				ww[2].Count++
				ww[2].Amount += amount
			}
		}
	}

	return ww
}
