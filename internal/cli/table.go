package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/resetwatch/internal/cluster"
	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// EdgeColor returns the border color for a cluster edge, or nil for none.
func EdgeColor(edge cluster.Edge) lipgloss.TerminalColor {
	switch edge {
	case cluster.EdgeEarliest:
		return EarliestColor
	case cluster.EdgeLatest:
		return LatestColor
	default:
		return nil
	}
}

// VendorLine renders one vendor as a single row styled by its status at now.
func VendorLine(v *model.Vendor, now time.Time) string {
	status := cluster.Classify(v, now)

	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %-14s council %-7s", v.Name, v.Zone, common.FormatCouncil(v.CouncilLeft))
	if v.ResetMaximum > 0 {
		fmt.Fprintf(&b, " max %-7s", common.FormatCouncil(v.ResetMaximum))
	}
	fmt.Fprintf(&b, "  %s", common.FormatCountdown(v.NextReset().Sub(now)))
	if len(v.Categories) > 0 {
		fmt.Fprintf(&b, "  [%s]", strings.Join(v.Categories, ", "))
	}

	switch status {
	case cluster.StatusExhausted:
		return ExhaustedStyle.Render(b.String())
	case cluster.StatusResetPending:
		return PendingStyle.Render(b.String())
	default:
		return b.String()
	}
}

// RenderClusters draws each cluster as a box, edges in their colors.
func RenderClusters(clusters []cluster.Cluster, now time.Time) string {
	if len(clusters) == 0 {
		return SubtleStyle.Render("No vendors.")
	}

	boxes := make([]string, 0, len(clusters))
	for _, c := range clusters {
		lines := make([]string, 0, len(c.Vendors))
		for _, v := range c.Vendors {
			lines = append(lines, VendorLine(v, now))
		}
		title := ""
		if c.Edge != cluster.EdgeNone {
			title = strings.ToUpper(c.Edge.String())
		}
		boxes = append(boxes, RenderBox(title, strings.Join(lines, "\n"), EdgeColor(c.Edge)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

// RenderSummary is the header line with the character, pool totals and the
// global countdown.
func RenderSummary(character string, council, maximum int, nextReset string) string {
	return fmt.Sprintf("%s  %s  %s  %s",
		BoldStyle.Render(character),
		CoinIcon+" Council pool: "+common.FormatCouncil(council),
		"Total vendor cash: "+common.FormatCouncil(maximum),
		ClockIcon+" Next reset: "+nextReset,
	)
}
