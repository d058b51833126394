package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(vendors []*Vendor) []string {
	out := make([]string, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, v.Name)
	}
	return out
}

func TestUpsert(t *testing.T) {
	vendors := []*Vendor{{Name: "A"}, {Name: "B"}}

	vendors = Upsert(vendors, &Vendor{Name: "C"})
	assert.Equal(t, []string{"A", "B", "C"}, names(vendors))

	vendors = Upsert(vendors, &Vendor{Name: "A", Zone: "Kur"})
	assert.Equal(t, []string{"A", "B", "C"}, names(vendors), "replacement keeps position")
	assert.Equal(t, "Kur", vendors[0].Zone)
}

func TestRemove(t *testing.T) {
	vendors := []*Vendor{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	out, ok := Remove(vendors, "B")
	assert.True(t, ok)
	assert.Equal(t, []string{"A", "C"}, names(out))
	assert.Equal(t, []string{"A", "B", "C"}, names(vendors), "input is not modified")

	_, ok = Remove(vendors, "Z")
	assert.False(t, ok)
}

func TestCloneAll(t *testing.T) {
	vendors := []*Vendor{{Name: "A", Categories: []string{"Misc"}}}
	clones := CloneAll(vendors)
	clones[0].CouncilLeft = 10
	clones[0].Categories[0] = "Armor"

	assert.Equal(t, 0, vendors[0].CouncilLeft)
	assert.Equal(t, "Misc", vendors[0].Categories[0])
	assert.Equal(t, -1, IndexOf(vendors, "missing"))
}
