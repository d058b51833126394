// Package cluster groups vendors whose resets fall close together in time.
package cluster

import (
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/resetwatch/internal/model"
)

// GapThreshold is the largest gap between consecutive resets that still keeps
// two vendors in the same cluster.
const GapThreshold = time.Hour

// minTaggedClusters is how many clusters must exist before the first and last
// are marked as edges.
const minTaggedClusters = 3

// Edge marks a cluster at either end of the reset timeline.
type Edge int

const (
	// EdgeNone is every cluster between the ends, or all of them when too few exist.
	EdgeNone Edge = iota
	// EdgeEarliest is the cluster that resets first.
	EdgeEarliest
	// EdgeLatest is the cluster that resets last.
	EdgeLatest
)

func (e Edge) String() string {
	switch e {
	case EdgeEarliest:
		return "earliest"
	case EdgeLatest:
		return "latest"
	default:
		return "none"
	}
}

// Cluster is a run of vendors, in reset order, whose consecutive resets are
// within GapThreshold of each other.
type Cluster struct {
	Vendors []*model.Vendor
	Edge    Edge
}

// Filter keeps vendors whose name, zone or categories contain query,
// ignoring case. A blank query keeps everything.
func Filter(vendors []*model.Vendor, query string) []*model.Vendor {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]*model.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if q == "" || strings.Contains(searchText(v), q) {
			out = append(out, v)
		}
	}
	return out
}

func searchText(v *model.Vendor) string {
	return strings.ToLower(v.Name + " " + v.Zone + " " + strings.Join(v.Categories, " "))
}

// SortByNextReset returns a copy ordered by next reset, earliest first. Ties
// keep their input order.
func SortByNextReset(vendors []*model.Vendor) []*model.Vendor {
	sorted := slices.Clone(vendors)
	slices.SortStableFunc(sorted, func(a, b *model.Vendor) int {
		return a.NextReset().Compare(b.NextReset())
	})
	return sorted
}

// Group splits vendors already sorted by next reset into clusters, starting
// a new one whenever the gap to the previous vendor exceeds threshold.
func Group(sorted []*model.Vendor, threshold time.Duration) []Cluster {
	if len(sorted) == 0 {
		return []Cluster{}
	}

	clusters := []Cluster{{Vendors: []*model.Vendor{sorted[0]}}}
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].NextReset().Sub(sorted[i-1].NextReset())
		if gap > threshold {
			clusters = append(clusters, Cluster{})
		}
		last := &clusters[len(clusters)-1]
		last.Vendors = append(last.Vendors, sorted[i])
	}
	return clusters
}

// GroupByResetProximity filters, sorts and groups vendors, then marks the
// first and last clusters as edges when there are enough to matter.
func GroupByResetProximity(vendors []*model.Vendor, query string) []Cluster {
	clusters := Group(SortByNextReset(Filter(vendors, query)), GapThreshold)
	if len(clusters) >= minTaggedClusters {
		clusters[0].Edge = EdgeEarliest
		clusters[len(clusters)-1].Edge = EdgeLatest
	}
	return clusters
}

// NextReset returns the earliest next reset across vendors. It reports false
// for an empty collection.
func NextReset(vendors []*model.Vendor) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, v := range vendors {
		next := v.NextReset()
		if !found || next.Before(earliest) {
			earliest = next
			found = true
		}
	}
	return earliest, found
}
