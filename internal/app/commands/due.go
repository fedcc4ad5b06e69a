package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/error/apperror"
)

type dueOptions struct {
	date   string
	offset int
	format string
}

// dueReport is what the due command prints
type dueReport struct {
	Schedule     *services.DueSchedule `json:"schedule"`
	Certificates []models.Certificate  `json:"expiring_certificates"`
}

// NewDueCommand creates the due command
func NewDueCommand(opts *RootOptions) *cobra.Command {
	o := &dueOptions{}

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Print the payments due on a date and the certificates about to expire",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.Config
			ref := services.StartOfDay(time.Now(), cfg.Location())
			if o.date != "" {
				d, err := models.ParseDate(o.date)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", o.date, err)
				}
				ref = d.Time
			}

			pool, store, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			schedule, err := services.NewDashboardService(store, cfg).DueOn(cmd.Context(), ref, o.offset)
			if err != nil {
				return err
			}
			certs, err := services.NewCertificateService(store, cfg, apperror.NewValidator()).ExpiringCertificates(cmd.Context(), ref)
			if err != nil {
				return err
			}

			report := dueReport{Schedule: schedule, Certificates: certs}
			switch o.format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "text":
				return printDue(cmd.OutOrStdout(), cfg.CurrencySymbol, report)
			default:
				return fmt.Errorf("unknown --format %q: must be text or json", o.format)
			}
		},
	}

	cmd.Flags().StringVar(&o.date, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&o.offset, "offset", 0, "days after the reference date")
	cmd.Flags().StringVar(&o.format, "format", "text", "output format: text or json")
	return cmd
}

func printDue(w io.Writer, currency string, r dueReport) error {
	section := func(title string, entries []services.DueEntry) {
		fmt.Fprintf(w, "%s:\n", title)
		if len(entries) == 0 {
			fmt.Fprintln(w, "  none")
			return
		}
		for _, e := range entries {
			status := "unpaid"
			if e.Paid {
				status = "paid"
			}
			amount := "-"
			if e.Amount != "" {
				amount = currency + e.Amount
			}
			fmt.Fprintf(w, "  %s - %s %s (%s)\n", e.Property, e.Payee, amount, status)
		}
	}

	fmt.Fprintf(w, "Due on %s\n", r.Schedule.Date)
	section("Rent due", r.Schedule.RentDue)
	section("Landlord payments due", r.Schedule.LandlordDue)

	fmt.Fprintln(w, "Certificates expiring:")
	if len(r.Certificates) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, c := range r.Certificates {
		fmt.Fprintf(w, "  %s %s expires %s\n", c.Property, c.Type, c.Expiry.String())
	}
	return nil
}
