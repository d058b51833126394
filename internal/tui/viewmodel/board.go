// Package viewmodel holds the display data for the TUI, separate from
// rendering. Rows are keyed by vendor name so a tick can refresh countdowns
// without rebuilding the layout.
package viewmodel

import (
	"strings"
	"time"

	"github.com/Veraticus/resetwatch/internal/cluster"
	"github.com/Veraticus/resetwatch/internal/common"
	"github.com/Veraticus/resetwatch/internal/model"
)

// VendorRow is one vendor as displayed.
type VendorRow struct {
	NextReset   time.Time
	Name        string
	Zone        string
	Council     string
	Maximum     string
	Countdown   string
	Categories  string
	Status      cluster.Status
	CouncilLeft int
}

// ClusterView is a cluster as an ordered list of row names.
type ClusterView struct {
	Names []string
	Edge  cluster.Edge
}

// Board is everything the vendor screen shows.
type Board struct {
	Rows         map[string]*VendorRow
	Character    string
	Filter       string
	TotalCouncil string
	TotalMaximum string
	NextReset    string
	Clusters     []ClusterView
	nextReset    time.Time
	hasNext      bool
}

// Build lays out a board from clustered vendors. allVendors is the unfiltered
// collection and drives the global countdown.
func Build(character, filter string, clusters []cluster.Cluster, allVendors []*model.Vendor, now time.Time) Board {
	b := Board{
		Rows:      make(map[string]*VendorRow),
		Character: character,
		Filter:    filter,
		Clusters:  make([]ClusterView, 0, len(clusters)),
	}

	for _, c := range clusters {
		view := ClusterView{Edge: c.Edge, Names: make([]string, 0, len(c.Vendors))}
		for _, v := range c.Vendors {
			b.Rows[v.Name] = &VendorRow{
				Name:        v.Name,
				Zone:        v.Zone,
				Council:     common.FormatCouncil(v.CouncilLeft),
				CouncilLeft: v.CouncilLeft,
				Maximum:     formatMaximum(v.ResetMaximum),
				Categories:  strings.Join(v.Categories, ", "),
				NextReset:   v.NextReset(),
			}
			view.Names = append(view.Names, v.Name)
		}
		b.Clusters = append(b.Clusters, view)
	}

	var council, maximum int
	for _, v := range allVendors {
		council += v.CouncilLeft
		maximum += v.ResetMaximum
	}
	b.TotalCouncil = common.FormatCouncil(council)
	b.TotalMaximum = common.FormatCouncil(maximum)
	b.nextReset, b.hasNext = cluster.NextReset(allVendors)

	b.Refresh(now)
	return b
}

func formatMaximum(maximum int) string {
	if maximum <= 0 {
		return ""
	}
	return common.FormatCouncil(maximum)
}

// Refresh recomputes countdowns and statuses for now.
func (b *Board) Refresh(now time.Time) {
	for _, row := range b.Rows {
		row.Countdown = common.FormatCountdown(row.NextReset.Sub(now))
		row.Status = rowStatus(row, now)
	}

	if b.hasNext {
		b.NextReset = common.FormatCountdown(b.nextReset.Sub(now))
	} else {
		b.NextReset = common.NoResetLabel
	}
}

func rowStatus(row *VendorRow, now time.Time) cluster.Status {
	return cluster.Classify(&model.Vendor{
		CouncilLeft: row.CouncilLeft,
		LastReset:   row.NextReset.Add(-model.ResetCycle),
	}, now)
}

// Order returns every row name in display order.
func (b Board) Order() []string {
	var names []string
	for _, c := range b.Clusters {
		names = append(names, c.Names...)
	}
	return names
}

// Empty reports whether there is nothing to list.
func (b Board) Empty() bool {
	return len(b.Rows) == 0
}
