package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/spark-api/internal/catalog"
	"github.com/noah-isme/spark-api/internal/models"
	"github.com/noah-isme/spark-api/migrations"
	"github.com/noah-isme/spark-api/pkg/config"
	"github.com/noah-isme/spark-api/pkg/database"
)

type rootOptions struct {
	catalogFile  string
	keywordsFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "sparkctl",
		Short:         "Query the Spark program catalog and manage its database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "catalog JSON file (default: embedded seed)")
	root.PersistentFlags().StringVar(&opts.keywordsFile, "keywords", "", "keyword tables YAML file (default: embedded tables)")

	root.AddCommand(
		newParseCmd(opts),
		newSearchCmd(opts),
		newStatesCmd(opts),
		newValidateCmd(opts),
		newMigrateCmd(),
	)
	return root
}

func (o *rootOptions) parser() (*catalog.Parser, error) {
	tables, err := catalog.LoadKeywordTables(o.keywordsFile)
	if err != nil {
		return nil, err
	}
	return catalog.NewParser(tables)
}

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <query>",
		Short: "Show what smart search detects in a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := opts.parser()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(parser.Parse(strings.Join(args, " ")))
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var state, field, grade, category string
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter the catalog, optionally applying a smart-search query",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.LoadStore(opts.catalogFile)
			if err != nil {
				return err
			}
			filter := models.NewCatalogFilter(state, field, grade, category, "")
			if len(args) > 0 {
				parser, err := opts.parser()
				if err != nil {
					return err
				}
				filter = catalog.ApplyParsed(filter, parser.Parse(strings.Join(args, " ")))
			}
			return printPrograms(cmd.OutOrStdout(), catalog.Filter(store.All(), filter))
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "state name or \"All States\"")
	cmd.Flags().StringVar(&field, "field", "", "field tag")
	cmd.Flags().StringVar(&grade, "grade", "", "grade 9-12")
	cmd.Flags().StringVar(&category, "category", "", "program category")
	return cmd
}

func newStatesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "Count programs available in each state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.LoadStore(opts.catalogFile)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STATE\tPROGRAMS")
			for _, sc := range store.StateCounts() {
				fmt.Fprintf(w, "%s\t%d\n", sc.State, sc.Count)
			}
			return w.Flush()
		},
	}
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog and keyword tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := catalog.LoadStore(opts.catalogFile)
			if err != nil {
				return err
			}
			if _, err := opts.parser(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d programs, keyword tables valid\n", store.Len())
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down|status>",
		Short:     "Apply or inspect the Postgres schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := migrateActions[args[0]]
			if !ok {
				return fmt.Errorf("unknown migrate action %q", args[0])
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.NewPostgres(cmd.Context(), cfg.Database, cfg.ConnectTimeout, zap.NewNop())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Setup(); err != nil {
				return err
			}
			return run(db.DB)
		},
	}
}

var migrateActions = map[string]func(db *sql.DB) error{
	"up":     func(db *sql.DB) error { return goose.Up(db, ".") },
	"down":   func(db *sql.DB) error { return goose.Down(db, ".") },
	"status": func(db *sql.DB) error { return goose.Status(db, ".") },
}

func printPrograms(out io.Writer, programs []models.Program) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATE\tGRADES\tDEADLINE")
	for _, p := range programs {
		grades := make([]string, len(p.GradeLevel))
		for i, g := range p.GradeLevel {
			grades[i] = fmt.Sprint(g)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.State, strings.Join(grades, ","), p.Deadline)
	}
	fmt.Fprintf(w, "\n%d programs\n", len(programs))
	return w.Flush()
}
