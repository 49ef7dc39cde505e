package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategoryNormalize(t *testing.T) {
	tests := []struct {
		in   Category
		want Category
	}{
		{CategoryFunding, CategoryFunding},
		{CategoryPricingChange, CategoryPricingChange},
		{Category(""), CategoryUnknown},
		{Category("rumor"), CategoryUnknown},
		{Category("FUNDING"), CategoryUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Normalize(), "Normalize(%q)", tt.in)
	}
}

func TestSignalText(t *testing.T) {
	sig := &Signal{Title: "Acme raises $50M", Summary: "Series B led by..."}
	assert.Equal(t, "Acme raises $50M Series B led by...", sig.Text())
}

func TestSignalAgeHours(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	sig := &Signal{PublishedAt: now.Add(-6 * time.Hour)}
	assert.InDelta(t, 6.0, sig.AgeHours(now), 1e-9)

	// Future-dated signals produce a negative age; callers tolerate it
	future := &Signal{PublishedAt: now.Add(2 * time.Hour)}
	assert.InDelta(t, -2.0, future.AgeHours(now), 1e-9)
}

func TestCompetitorEntities(t *testing.T) {
	sig := &Signal{
		Entities: []Entity{
			{Type: "person", Name: "Jane Doe"},
			{Type: "company", Name: "Acme", IsCompetitor: true},
			{Type: "company", Name: "PartnerCo"},
			{Type: "company", Name: "Globex", IsCompetitor: true},
		},
	}

	got := sig.CompetitorEntities()
	assert.Len(t, got, 2)
	// Signal entity order is preserved
	assert.Equal(t, "Acme", got[0].Name)
	assert.Equal(t, "Globex", got[1].Name)
}

func TestUserCompetitors(t *testing.T) {
	u := &User{
		ID: "alice",
		Context: UserContext{
			PrimaryCompetitors:   []string{"Acme", "Globex", "Initech", "Umbrella"},
			SecondaryCompetitors: []string{"Hooli"},
		},
	}

	assert.Equal(t, []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli"}, u.AllCompetitors())

	assert.True(t, u.IsPrimaryCompetitor("acme"))
	assert.True(t, u.IsPrimaryCompetitor("GLOBEX"))
	// Only the first three primaries count as primary
	assert.False(t, u.IsPrimaryCompetitor("Umbrella"))
	assert.False(t, u.IsPrimaryCompetitor("Hooli"))

	assert.True(t, u.TracksCompetitor("hooli"))
	assert.True(t, u.TracksCompetitor("Umbrella"))
	assert.False(t, u.TracksCompetitor("Stark Industries"))
}
