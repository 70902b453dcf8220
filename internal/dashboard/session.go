package dashboard

import (
	"fmt"
	"slices"

	"pathways.rf2lab.org/internal/models"
)

// Observer is notified with the freshly rendered view after every accepted change.
type Observer func(sel Selection, view models.View)

// Session owns one Selection and the view last rendered from it. It is not
// safe for concurrent use; callers serialise access per session.
type Session struct {
	renderer  *Renderer
	selection Selection
	view      models.View
	observers []subscription
	nextID    int
}

type subscription struct {
	id int
	fn Observer
}

// NewSession starts a session on the renderer's default selection.
func NewSession(r *Renderer) (*Session, error) {
	return RestoreSession(r, r.DefaultSelection())
}

// RestoreSession starts a session on an existing selection.
func RestoreSession(r *Renderer, sel Selection) (*Session, error) {
	sel = r.AdjustCostSensitivity(sel, sel.Sensitivity)
	view, err := r.Render(sel)
	if err != nil {
		return nil, err
	}
	return &Session{renderer: r, selection: sel, view: view}, nil
}

// Selection returns the current selection.
func (s *Session) Selection() Selection {
	return s.selection
}

// View returns the view rendered from the current selection.
func (s *Session) View() models.View {
	return s.view
}

// Subscribe registers an observer and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: o})
	return func() {
		s.observers = slices.DeleteFunc(s.observers, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Observers reports how many observers are registered.
func (s *Session) Observers() int {
	return len(s.observers)
}

// SelectIndustry switches the session to another industry. An unknown name
// leaves the selection and view untouched and notifies no one.
func (s *Session) SelectIndustry(name string) (models.View, error) {
	sel, err := s.renderer.SelectIndustry(s.selection, name)
	if err != nil {
		return s.view, err
	}
	return s.apply(sel)
}

// AdjustCostSensitivity moves the slider, clamping out-of-range values.
func (s *Session) AdjustCostSensitivity(value float64) (models.View, error) {
	return s.apply(s.renderer.AdjustCostSensitivity(s.selection, value))
}

func (s *Session) apply(sel Selection) (models.View, error) {
	view, err := s.renderer.Render(sel)
	if err != nil {
		return s.view, fmt.Errorf("rendering %q: %w", sel.Industry, err)
	}
	s.selection = sel
	s.view = view
	for _, sub := range slices.Clone(s.observers) {
		if sub.fn != nil {
			sub.fn(sel, view)
		}
	}
	return view, nil
}
