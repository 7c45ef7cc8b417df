package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vdash/vdash/internal/config/data"
	"github.com/vdash/vdash/internal/dao"
	"github.com/vdash/vdash/internal/form"
	"github.com/vdash/vdash/internal/model"
	"github.com/vdash/vdash/internal/model1"
	"github.com/vdash/vdash/internal/render"
)

type exportOptions struct {
	status  string
	search  string
	sort    string
	filters []string
}

func newExportCmd() *cobra.Command {
	var (
		opts exportOptions
		out  string
	)
	cmd := &cobra.Command{
		Use:   "export <resource>",
		Short: "Export a list as CSV",
		Long:  "Export writes the records of a list as CSV, after applying the same status tab, search, filters and sort as the list view.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rid, ok := dao.LookupResource(args[0])
			if !ok {
				return fmt.Errorf("unknown resource %q", args[0])
			}
			cfg, _, closeLog, err := bootstrap(cmd, "")
			if err != nil {
				return err
			}
			defer closeLog()

			f, err := openFactory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			h, rows, err := exportRows(cmd.Context(), f, rid, opts)
			if err != nil {
				return err
			}

			if out != "" && out != "-" {
				if err := model1.ExportFile(out, h, rows); err != nil {
					return err
				}
				log.Info().Str("resource", rid.String()).Int("rows", len(rows)).Str("path", out).Msg("Exported")
				return nil
			}

			return model1.ExportCSV(cmd.OutOrStdout(), h, rows)
		},
	}
	cmd.Flags().StringVar(&opts.status, "status", "", "Status tab to export")
	cmd.Flags().StringVar(&opts.search, "search", "", "Search text")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort as field[:desc], or -field for descending")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "Column filter such as status=Paid or amount=100..500")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, stdout when empty or -")

	return cmd
}

// exportRows returns the rows of rid visible under opts, in order.
func exportRows(ctx context.Context, f dao.Factory, rid *dao.ResourceID, opts exportOptions) (model1.Header, model1.Rows, error) {
	a, err := dao.AccessorFor(f, rid)
	if err != nil {
		return nil, nil, err
	}
	r, err := model.RendererFor(rid)
	if err != nil {
		return nil, nil, err
	}
	rr, err := a.LoadList(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows, err := render.Rows(r, rr)
	if err != nil {
		return nil, nil, err
	}

	h := r.Header()
	fs := model1.NewFilterState()
	if opts.status != "" && opts.status != model1.AllTab {
		fs.Set("status", model1.Exact(opts.status))
	}
	fs.SetGlobal(opts.search)
	for _, expr := range opts.filters {
		if err := model.ApplyFilter(&fs, h, expr); err != nil {
			return nil, nil, err
		}
	}

	st, err := parseSort(h, opts.sort)
	if err != nil {
		return nil, nil, err
	}

	return h, st.Apply(h, fs.Apply(h, rows)), nil
}

// parseSort reads the config sort form "field[:desc]" as well as "-field".
func parseSort(h model1.Header, s string) (model1.SortState, error) {
	desc := strings.HasPrefix(s, "-")
	st, err := data.ParseSort(strings.TrimPrefix(s, "-"))
	if err != nil || st.Column == "" {
		return st, err
	}
	if desc {
		st.Asc = false
	}
	if c, ok := h.Column(st.Column); !ok || !c.Sortable {
		return st, fmt.Errorf("column %q is not sortable", st.Column)
	}

	return st, nil
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the demo customers and invoices into the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, closeLog, err := bootstrap(cmd, "")
			if err != nil {
				return err
			}
			defer closeLog()

			f, err := openFactory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			if f.ReadOnly() {
				return dao.ErrReadOnly
			}

			n, err := dao.Seed(cmd.Context(), f.Store(), dao.Fixtures())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records\n", n)

			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-customer <file.json>",
		Short: "Check a customer record against the customer form rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bb, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var rec model1.Record
			if err := json.Unmarshal(bb, &rec); err != nil {
				return fmt.Errorf("invalid customer %s: %w", args[0], err)
			}

			msgs := validateCustomer(rec)
			if len(msgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}

			return fmt.Errorf("%d invalid field(s)", len(msgs))
		},
	}
}

// validateCustomer returns one "field: message" line per invalid field,
// sorted by field.
func validateCustomer(rec model1.Record) []string {
	mm := form.Messages(form.ValidateRecord(form.CustomerSchema(), rec))
	out := make([]string, 0, len(mm))
	for k, v := range mm {
		out = append(out, k+": "+v)
	}
	sort.Strings(out)

	return out
}
