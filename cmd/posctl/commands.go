package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"burger_pos/internal/app"
	"burger_pos/internal/config"
	"burger_pos/internal/database"
	"burger_pos/internal/handlers"
	"burger_pos/internal/models"
	"burger_pos/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNeedsYes = errors.New("refusing to continue without --yes")

type appFactory func() (*app.App, error)

func newRootCmd(build appFactory, loadConfig func() (*config.Config, error)) *cobra.Command {
	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Operator tool for the burger POS",
		Long:          `posctl inspects and closes the business day against the same storage the POS server uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newOrdersCmd(build),
		newReportCmd(build),
		newCloseDayCmd(build),
		newResetDayCmd(build),
		newMigrateCmd(loadConfig),
		newHashPinCmd(),
	)
	return root
}

func withApp(build appFactory, fn func(a *app.App, cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := build()
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(a, cmd)
	}
}

func newOrdersCmd(build appFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List active orders, oldest first",
		RunE: withApp(build, func(a *app.App, cmd *cobra.Command) error {
			orders, err := a.Orders.ListActive()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TICKET\tSTATUS\tCUSTOMER\tITEMS\tTOTAL")
			for _, o := range orders {
				fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\n", o.Number, o.Status, o.Customer, o.ItemSummary(), services.FormatAmount(o.Total))
			}
			return w.Flush()
		}),
	}
}

func newReportCmd(build appFactory) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show today's sales report",
		RunE: withApp(build, func(a *app.App, cmd *cobra.Command) error {
			report, err := a.Reports.DailyReport()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintf(out, "Business date:  %s\n", report.BusinessDate)
			fmt.Fprintf(out, "Orders:         %d\n", report.OrderCount)
			fmt.Fprintf(out, "Total sales:    %s\n", services.FormatAmount(report.TotalSales))
			fmt.Fprintf(out, "Average ticket: %s\n", services.FormatAmount(report.AverageTicket))
			if report.TaxAmount > 0 {
				fmt.Fprintf(out, "Tax (%s):     %s\n", report.TaxRate, services.FormatAmount(report.TaxAmount))
				fmt.Fprintf(out, "Total with tax: %s\n", services.FormatAmount(report.TotalWithTax))
			}

			methods := make([]string, 0, len(report.ByPaymentMethod))
			for m := range report.ByPaymentMethod {
				methods = append(methods, string(m))
			}
			sort.Strings(methods)
			for _, m := range methods {
				fmt.Fprintf(out, "  %-12s  %s\n", m, services.FormatAmount(report.ByPaymentMethod[models.PaymentMethod(m)]))
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newCloseDayCmd(build appFactory) *cobra.Command {
	var (
		outDir string
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "close-day",
		Short: "Export today's sales to a spreadsheet and reset the day",
		RunE: withApp(build, func(a *app.App, cmd *cobra.Command) error {
			if !yes {
				return errNeedsYes
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			var path string
			_, err := a.Reports.CloseDayWith(func(artifact *models.ExportArtifact) error {
				path = filepath.Join(outDir, artifact.Filename)
				return os.WriteFile(path, artifact.Data, 0o644)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Day closed, spreadsheet written to %s\n", path)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the spreadsheet to")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm closing the day")
	return cmd
}

func newResetDayCmd(build appFactory) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset-day",
		Short: "Discard today's orders and restart ticket numbers without exporting",
		RunE: withApp(build, func(a *app.App, cmd *cobra.Command) error {
			if !yes {
				return errNeedsYes
			}
			if err := a.Store.ResetDay(false); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Day reset")
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm discarding today's orders")
	return cmd
}

// newMigrateCmd creates or updates the closing archive schema without
// starting the server.
func newMigrateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the closing archive tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.ArchiveEnabled() {
				return errors.New("DATABASE_URL is not set")
			}
			db, err := database.Initialize(cfg.DatabaseURL, zap.NewNop())
			if err != nil {
				return err
			}
			defer database.Close(db)
			fmt.Fprintln(cmd.OutOrStdout(), "Closing archive is up to date")
			return nil
		},
	}
}

func newHashPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-pin PIN",
		Short: "Print a bcrypt hash for MANAGER_PIN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := handlers.HashPin(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
