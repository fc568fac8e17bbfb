package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kevinmichaelchen/trend-digest/internal/config"
	"github.com/kevinmichaelchen/trend-digest/internal/history"
	"github.com/kevinmichaelchen/trend-digest/internal/render"
	"github.com/spf13/cobra"
)

func historyCmd(loadCfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage recently generated digests",
	}
	cmd.AddCommand(
		historyListCmd(loadCfg),
		historyShowCmd(loadCfg),
		historyDeleteCmd(loadCfg),
		historyClearCmd(loadCfg),
	)
	return cmd
}

func historyListCmd(loadCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved digests, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore, err := openStore(ctx, loadCfg())
			if err != nil {
				return err
			}
			defer closeStore()

			records, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No history yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tDOMAINS\tPROMPT")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.ID,
					r.CreatedAt.Local().Format(render.TimestampLayout),
					strings.Join(r.Domains, ", "),
					history.PromptPreview(r.Prompt),
				)
			}
			return w.Flush()
		},
	}
}

func historyShowCmd(loadCfg func() *config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a saved digest's HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore, err := openStore(ctx, loadCfg())
			if err != nil {
				return err
			}
			defer closeStore()

			rec, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Println(rec.HTML)
				return nil
			}
			if err := os.WriteFile(out, []byte(rec.HTML), 0o644); err != nil {
				return fmt.Errorf("writing digest: %w", err)
			}
			fmt.Printf("Digest written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the HTML to this path instead of stdout")
	return cmd
}

func historyDeleteCmd(loadCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one saved digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore, err := openStore(ctx, loadCfg())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func historyClearCmd(loadCfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved digests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeStore, err := openStore(ctx, loadCfg())
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Clear(ctx); err != nil {
				return err
			}
			fmt.Println("History cleared")
			return nil
		},
	}
}
