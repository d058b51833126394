package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/resetwatch/internal/cli"
	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/tracker"
)

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage the active character's vendors",
		Long:  `List, add, update, reset and delete the vendors tracked for a character.`,
	}

	// Subcommands
	cmd.AddCommand(vendorsListCmd())
	cmd.AddCommand(vendorsAddCmd())
	cmd.AddCommand(vendorsUpdateCmd())
	cmd.AddCommand(vendorsResetCmd())
	cmd.AddCommand(vendorsDeleteCmd())

	return cmd
}

// vendorFlags are the form fields shared by add and update.
type vendorFlags struct {
	zone       string
	council    string
	days       string
	hours      string
	minutes    string
	custom     string
	categories []string
	override   bool
}

func (f *vendorFlags) register(cmd *cobra.Command, withZone bool) {
	if withZone {
		cmd.Flags().StringVar(&f.zone, "zone", "", "zone the vendor is in")
	}
	cmd.Flags().StringVar(&f.council, "council", "", "council left, in thousands (1.5 = 1500)")
	cmd.Flags().StringVar(&f.days, "days", "", "days until reset")
	cmd.Flags().StringVar(&f.hours, "hours", "", "hours until reset")
	cmd.Flags().StringVar(&f.minutes, "minutes", "", "minutes until reset")
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "category (repeatable)")
	cmd.Flags().StringVar(&f.custom, "custom", "", "extra comma-separated categories")
	cmd.Flags().BoolVar(&f.override, "override", false, "allow a timer longer than 6d 23h 59m")
}

func (f *vendorFlags) vendorInput(name string) tracker.VendorInput {
	return tracker.VendorInput{
		Name:       name,
		Zone:       f.zone,
		Council:    f.council,
		Days:       f.days,
		Hours:      f.hours,
		Minutes:    f.minutes,
		Custom:     f.custom,
		Categories: f.categories,
		Override:   f.override,
	}
}

// updateInput starts from the pre-filled form and replaces only the fields
// whose flags were given.
func (f *vendorFlags) updateInput(prefill tracker.UpdateInput, changed func(string) bool) tracker.UpdateInput {
	in := prefill
	if changed("council") {
		in.Council = f.council
	}
	if changed("days") {
		in.Days = f.days
	}
	if changed("hours") {
		in.Hours = f.hours
	}
	if changed("minutes") {
		in.Minutes = f.minutes
	}
	if changed("category") {
		in.Categories = f.categories
	}
	if changed("custom") {
		in.Custom = f.custom
	}
	in.Override = f.override
	return in
}

func countVendors(n int) string {
	if n == 1 {
		return "1 vendor"
	}
	return fmt.Sprintf("%d vendors", n)
}

func vendorsListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vendors grouped by reset time",
		Long: `List vendors in clusters of close reset times. The earliest and latest
clusters are highlighted once there are at least three.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, cleanup, err := initTracker(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer cleanup()

			renderVendors(cmd.OutOrStdout(), t, filter)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show vendors whose name, zone or category contains this")

	return cmd
}

func renderVendors(w io.Writer, t *tracker.Tracker, filter string) {
	totals := t.Totals()
	printf(w, "%s\n\n", cli.RenderSummary(t.Character(), totals.Council, totals.Maximum, t.GlobalCountdown()))
	printf(w, "%s\n", cli.RenderClusters(t.QueryAndCluster(filter), t.Now()))
}

func vendorsAddCmd() *cobra.Command {
	var flags vendorFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a vendor",
		Long: `Add a vendor with its current council and the time left until it resets.
Adding a name that already exists replaces that vendor.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, cleanup, err := initTracker(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer cleanup()

			v, err := t.AddVendor(cmd.Context(), flags.vendorInput(args[0]))
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess("Added "+v.Name+" ("+describeVendor(v, t.Now())+")"))
			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}

func vendorsUpdateCmd() *cobra.Command {
	var flags vendorFlags

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Update a vendor's council, timer or categories",
		Long: `Update a vendor. Flags that are not given keep the vendor's current
values, with the timer taken as the time left right now.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, cleanup, err := initTracker(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer cleanup()

			prefill, err := t.Prefill(args[0])
			if err != nil {
				return err
			}

			in := flags.updateInput(prefill, cmd.Flags().Changed)
			v, err := t.UpdateVendor(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess("Updated "+v.Name+" ("+describeVendor(v, t.Now())+")"))
			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}

func vendorsResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset <name>",
		Short: "Mark a vendor as reset now",
		Long:  `Restart a vendor's weekly timer from now and restore its council to the known maximum.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, cleanup, err := initTracker(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			ok, err := confirmVendorAction(ctx, cmd, t, "Reset", args[0], force)
			if err != nil || !ok {
				return err
			}

			v, err := t.ResetVendor(ctx, args[0])
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess("Reset "+v.Name+" ("+common.FormatCouncil(v.CouncilLeft)+" council)"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func vendorsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, cleanup, err := initTracker(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			ok, err := confirmVendorAction(ctx, cmd, t, "Delete", args[0], force)
			if err != nil || !ok {
				return err
			}

			if err := t.DeleteVendor(ctx, args[0]); err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess("Deleted "+args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

// confirmVendorAction checks that the vendor exists and, unless forced, asks
// before going ahead.
func confirmVendorAction(ctx context.Context, cmd *cobra.Command, t *tracker.Tracker, verb, name string, force bool) (bool, error) {
	v, err := t.Vendor(name)
	if err != nil {
		return false, err
	}
	if force {
		return true, nil
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	ok, err := prompter.Confirm(ctx, fmt.Sprintf("%s %s (%s)? ", verb, v.Name, describeVendor(v, t.Now())))
	if err != nil {
		return false, err
	}
	if !ok {
		printf(cmd.OutOrStdout(), "%s\n", cli.FormatInfo("Canceled"))
	}
	return ok, nil
}

func describeVendor(v *model.Vendor, now time.Time) string {
	desc := common.FormatCouncil(v.CouncilLeft) + " council, " + common.FormatCountdown(v.NextReset().Sub(now))
	if v.Zone != "" {
		desc = v.Zone + ", " + desc
	}
	return desc
}
