package cli

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/techjobs/internal/jobs"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <field|all>",
		Short: "List distinct values of a column, or every job with \"all\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *jobs.Store, p *printer) error {
				if args[0] == jobs.FieldAll {
					records, err := store.ListAll(ctx)
					if err != nil {
						return err
					}
					columns, err := store.Columns(ctx)
					if err != nil {
						return err
					}
					return p.records(columns, records)
				}

				values, err := store.ListDistinctValues(ctx, args[0])
				if err != nil {
					return err
				}
				return p.values(args[0], values)
			})
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <field|all> <term>",
		Short: "Search jobs whose column (or any column) contains term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, store *jobs.Store, p *printer) error {
				records, err := store.Search(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				columns, err := store.Columns(ctx)
				if err != nil {
					return err
				}
				return p.records(columns, records)
			})
		},
	}
}

// withStore opens the store for cmd and runs fn. Errors carry the
// user-facing message and code.
func withStore(cmd *cobra.Command, fn func(context.Context, *jobs.Store, *printer) error) error {
	store, closeFn, err := storeFromCmd(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	p := newPrinter(outputFormat(cmd), cmd.OutOrStdout())
	if err := fn(cmd.Context(), store, p); err != nil {
		msg := jobs.MapError(err)
		return fmt.Errorf("%s (%s): %w", msg.Message, msg.Code, err)
	}
	return nil
}
