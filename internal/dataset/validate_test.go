package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsBrokenData(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			name:    "scope shares do not sum to 100",
			mutate:  func(s string) string { return strings.Replace(s, "scope1: 12", "scope1: 13", 1) },
			wantMsg: "scope 1+2+3 shares sum to 101",
		},
		{
			name:    "scope 3 categories do not sum to scope 3",
			mutate:  func(s string) string { return strings.Replace(s, "share: 40", "share: 41", 1) },
			wantMsg: "scope 3 categories sum to 80, want 79",
		},
		{
			name:    "unknown guidance status",
			mutate:  func(s string) string { return strings.Replace(s, "guidance: None", "guidance: Someday", 1) },
			wantMsg: `unknown guidance "Someday"`,
		},
		{
			name: "inverted abatement range",
			mutate: func(s string) string {
				return strings.Replace(s, "abatement_cost: {low: 15, high: 85", "abatement_cost: {low: 95, high: 85", 1)
			},
			wantMsg: "abatement cost: low 95 exceeds high 85",
		},
		{
			name:    "unexpected industry",
			mutate:  func(s string) string { return strings.Replace(s, "name: Technology", "name: Finance", 1) },
			wantMsg: `expected "Technology", got "Finance"`,
		},
		{
			name: "unknown field",
			mutate: func(s string) string {
				return strings.Replace(s, "sample_size: 48", "sample_size: 48\n    region: EU", 1)
			},
			wantMsg: "field region not found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := tc.mutate(string(embeddedProfiles))
			_, err := Parse([]byte(raw), "test.yaml")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDataset)
			assert.Contains(t, err.Error(), tc.wantMsg)
			assert.Contains(t, err.Error(), "test.yaml")
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	ds := loadTestDataset(t)
	industries := ds.Industries()
	industries[0].Scope1 = -5
	industries[1].Slug = industries[0].Slug

	err := Validate(industries, ds.Sectors())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scope1 share is negative")
	assert.Contains(t, err.Error(), "duplicate name or slug")
}

func TestValidateRequiresThreeIndustries(t *testing.T) {
	ds := loadTestDataset(t)

	err := Validate(ds.Industries()[:2], ds.Sectors())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 industries, got 2")
}

func TestValidateAllowsSlugMatchingName(t *testing.T) {
	ds := loadTestDataset(t)
	industries := ds.Industries()
	require.Equal(t, "Technology", industries[1].Name)

	for _, slug := range []string{"technology", "Technology", " TECHNOLOGY "} {
		industries[1].Slug = slug
		assert.NoError(t, Validate(industries, ds.Sectors()), "slug %q", slug)
	}
}

func TestValidateRejectsSlugSharedAcrossIndustries(t *testing.T) {
	raw := strings.Replace(string(embeddedProfiles), "slug: food-beverage", "slug: technology", 1)

	_, err := Parse([]byte(raw), "test.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDataset)
	assert.Contains(t, err.Error(), `industry 1: duplicate name or slug "Technology"`)
}
