package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/resetwatch/internal/cli"
	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
	"github.com/Veraticus/resetwatch/internal/tracker"
)

// Export formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type exportedVendor struct {
	LastReset    time.Time `json:"last_reset" yaml:"last_reset"`
	NextReset    time.Time `json:"next_reset" yaml:"next_reset"`
	Name         string    `json:"name" yaml:"name"`
	Zone         string    `json:"zone" yaml:"zone"`
	Countdown    string    `json:"countdown" yaml:"countdown"`
	Categories   []string  `json:"categories" yaml:"categories"`
	CouncilLeft  int       `json:"council_left" yaml:"council_left"`
	ResetMaximum int       `json:"reset_maximum" yaml:"reset_maximum"`
}

type exportDocument struct {
	ExportedAt   time.Time        `json:"exported_at" yaml:"exported_at"`
	Character    string           `json:"character" yaml:"character"`
	Vendors      []exportedVendor `json:"vendors" yaml:"vendors"`
	TotalCouncil int              `json:"total_council" yaml:"total_council"`
	TotalMaximum int              `json:"total_maximum" yaml:"total_maximum"`
}

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active character's vendors",
		Long: `Write the active character's vendors, in reset order, as JSON or YAML.
Timestamps are absolute, so the export stays meaningful after the countdowns move on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("unsupported format %q (want %s or %s)", format, formatJSON, formatYAML)
			}

			t, cleanup, err := initTracker(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer cleanup()

			doc := buildExport(t)

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := writeExport(w, format, doc); err != nil {
				return err
			}

			if output != "" {
				printf(cmd.ErrOrStderr(), "%s\n", cli.FormatSuccess(fmt.Sprintf("Exported %s to %s", countVendors(len(doc.Vendors)), output)))
			}
			common.LogDebug("Exported vendors", common.Fields{"character": doc.Character, "format": format})
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func buildExport(t *tracker.Tracker) exportDocument {
	now := t.Now()
	totals := t.Totals()

	var vendors []*model.Vendor
	for _, c := range t.QueryAndCluster("") {
		vendors = append(vendors, c.Vendors...)
	}

	doc := exportDocument{
		Character:    t.Character(),
		ExportedAt:   now,
		TotalCouncil: totals.Council,
		TotalMaximum: totals.Maximum,
		Vendors:      make([]exportedVendor, 0, len(vendors)),
	}
	for _, v := range vendors {
		doc.Vendors = append(doc.Vendors, exportedVendor{
			Name:         v.Name,
			Zone:         v.Zone,
			CouncilLeft:  v.CouncilLeft,
			ResetMaximum: v.ResetMaximum,
			LastReset:    v.LastReset,
			NextReset:    v.NextReset(),
			Countdown:    common.FormatCountdown(v.NextReset().Sub(now)),
			Categories:   v.Categories,
		})
	}
	return doc
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}
