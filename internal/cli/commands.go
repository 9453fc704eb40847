package cli

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/coregx/sqldialect/internal/dialects"
	"github.com/coregx/sqldialect/internal/schema"
	"github.com/coregx/sqldialect/internal/security"
	"github.com/coregx/sqldialect/internal/typename"
)

func newDialectsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects in detection order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Priority", "Name", "Aliases", "Quotes", "Parameters", "Types"})

			for _, d := range a.catalog.GetAllDialects() {
				priority := fmt.Sprint(d.Priority())
				if d.Priority() == dialects.DefaultPriority {
					priority = "default"
				}
				types := ""
				if lister, ok := d.(interface{ ColumnTypes() []typename.Code }); ok {
					types = fmt.Sprint(len(lister.ColumnTypes()))
				}
				t.AppendRow(table.Row{
					priority,
					d.Name(),
					strings.Join(d.Aliases(), ", "),
					d.OpenQuote() + d.CloseQuote(),
					d.EscapeParameter("name") + " " + d.Placeholder(1),
					types,
				})
			}
			t.Render()
			return nil
		},
	}
}

func newDetectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect the dialect of a database connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			d, err := a.catalog.GetDialectFor(ctx, db)
			if err != nil {
				return err
			}
			version, err := d.GetDatabaseVersion(ctx, db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "dialect: %s\n", d.Name())
			_, _ = fmt.Fprintf(out, "version: %s\n", version)
			return nil
		},
	}
}

func newTablesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables of a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			d, err := a.dialectFor(ctx, db)
			if err != nil {
				return err
			}
			names, err := d.GetTableNames(ctx, db)
			if err != nil {
				return err
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newDDLCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ddl FILE...",
		Short: "Render CREATE TABLE statements from YAML table definitions",
		Long: `Render CREATE TABLE and CREATE INDEX statements for every table defined in
the given YAML files. The dialect comes from --dialect, or is detected from
--driver and --dsn. With --apply the statements are validated, executed on the
connection and recorded in the audit log at info level.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := security.WithUser(cmd.Context(), currentUser())

			var tables []*schema.Table
			for _, path := range args {
				loaded, err := schema.LoadFile(path)
				if err != nil {
					return err
				}
				tables = append(tables, loaded...)
			}

			var db *sql.DB
			if a.cfg.HasConnection() || a.cfg.Apply {
				var err error
				if db, err = a.open(ctx); err != nil {
					return err
				}
				defer db.Close()
			}

			d, err := a.dialectFor(ctx, db)
			if err != nil {
				return err
			}

			// Nothing executes until every table has rendered and validated.
			type plan struct {
				table string
				stmts []string
			}
			plans := make([]plan, 0, len(tables))
			out := cmd.OutOrStdout()
			for _, t := range tables {
				ddl, err := d.FormatCreateTable(t)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, ddl)

				if !a.cfg.Apply {
					continue
				}
				stmts, err := a.validator.ValidateScript(ddl)
				if err != nil {
					a.auditor.RecordRejected(ctx, d.Name(), ddl, err)
					return fmt.Errorf("refusing to apply %s: %w", t.Name, err)
				}
				plans = append(plans, plan{table: t.Name, stmts: stmts})
			}

			for _, p := range plans {
				for _, stmt := range p.stmts {
					start := time.Now()
					_, err := db.ExecContext(ctx, stmt)
					a.auditor.Record(ctx, d.Name(), p.table, stmt, err, time.Since(start))
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", p.table, err)
					}
				}
				a.log.Info("table created", "table", p.table, "dialect", d.Name())
			}
			return nil
		},
	}
	cmd.Flags().Bool("apply", false, "execute the statements against the connection")
	return cmd
}
