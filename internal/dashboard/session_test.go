package dashboard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathways.rf2lab.org/internal/models"
)

func TestSessionStartsOnDefaultSelection(t *testing.T) {
	r := newTestRenderer(t)

	s, err := NewSession(r)
	require.NoError(t, err)

	assert.Equal(t, r.DefaultSelection(), s.Selection())
	assert.Equal(t, "Food & Beverage", s.View().Industry.Name)
}

func TestRestoreSession(t *testing.T) {
	r := newTestRenderer(t)

	s, err := RestoreSession(r, Selection{Industry: "Technology", Sensitivity: -3})
	require.NoError(t, err)
	assert.Equal(t, Selection{Industry: "Technology", Sensitivity: 0}, s.Selection())

	_, err = RestoreSession(r, Selection{Industry: "Unknown"})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSessionSelectIndustryNotifiesObservers(t *testing.T) {
	r := newTestRenderer(t)
	s, err := NewSession(r)
	require.NoError(t, err)

	var notified []models.View
	s.Subscribe(func(sel Selection, view models.View) {
		assert.Equal(t, sel.Industry, view.Industry.Name)
		notified = append(notified, view)
	})

	view, err := s.SelectIndustry("Technology")
	require.NoError(t, err)

	require.Len(t, notified, 1)
	assert.Equal(t, view, notified[0])
	assert.Equal(t, "Technology", s.Selection().Industry)
	assert.Equal(t, 17.0, s.View().Emissions.Scope2)
}

func TestSessionRejectsUnknownIndustry(t *testing.T) {
	r := newTestRenderer(t)
	s, err := NewSession(r)
	require.NoError(t, err)

	_, err = s.SelectIndustry("Technology")
	require.NoError(t, err)
	_, err = s.AdjustCostSensitivity(20)
	require.NoError(t, err)

	beforeSel := s.Selection()
	beforeView := s.View()

	calls := 0
	s.Subscribe(func(Selection, models.View) { calls++ })

	view, err := s.SelectIndustry("Unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	assert.Equal(t, 0, calls, "rejected selections must not re-render")
	assert.Equal(t, beforeSel, s.Selection())
	if diff := cmp.Diff(beforeView, s.View()); diff != "" {
		t.Fatalf("view changed after rejected selection:\n%s", diff)
	}
	if diff := cmp.Diff(beforeView, view); diff != "" {
		t.Fatalf("returned view should be the prior view:\n%s", diff)
	}
}

func TestSessionAdjustCostSensitivity(t *testing.T) {
	r := newTestRenderer(t)
	s, err := NewSession(r)
	require.NoError(t, err)

	view, err := s.AdjustCostSensitivity(-100)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Selection().Sensitivity)
	assert.Equal(t, 15.0, view.Cost.Estimate)

	view, err = s.AdjustCostSensitivity(1e9)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Selection().Sensitivity)
	assert.Equal(t, 85.0, view.Cost.Estimate)
}

func TestSessionUnsubscribe(t *testing.T) {
	r := newTestRenderer(t)
	s, err := NewSession(r)
	require.NoError(t, err)

	first, second := 0, 0
	unsubscribe := s.Subscribe(func(Selection, models.View) { first++ })
	s.Subscribe(func(Selection, models.View) { second++ })

	_, err = s.AdjustCostSensitivity(10)
	require.NoError(t, err)
	unsubscribe()
	_, err = s.AdjustCostSensitivity(20)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, s.Observers())
}

func TestSessionUnsubscribeReleasesObservers(t *testing.T) {
	r := newTestRenderer(t)
	s, err := NewSession(r)
	require.NoError(t, err)

	kept := 0
	s.Subscribe(func(Selection, models.View) { kept++ })
	for i := 0; i < 100; i++ {
		unsubscribe := s.Subscribe(func(Selection, models.View) { t.Fatal("removed observer called") })
		unsubscribe()
		unsubscribe()
	}
	assert.Equal(t, 1, s.Observers())

	_, err = s.SelectIndustry("Technology")
	require.NoError(t, err)
	assert.Equal(t, 1, kept)
}
