package axis_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/timeaxis/timeaxis"
	"github.com/timeaxis/timeaxis/axis"
)

func newViews(names ...string) []*axis.TrackView {
	var ret []*axis.TrackView
	for _, n := range names {
		ret = append(ret, axis.NewTrackView(timeaxis.NewRoute(n), nil))
	}
	return ret
}

func assertViews(t *testing.T, what string, got []*axis.TrackView, want ...*axis.TrackView) {
	t.Helper()
	if !slices.Equal(got, want) {
		var g, w []string
		for _, v := range got {
			g = append(g, v.Name())
		}
		for _, v := range want {
			w = append(w, v.Name())
		}
		t.Fatalf("%s = %v, want %v", what, g, w)
	}
}

func TestAddUnderlayIsSymmetric(t *testing.T) {
	v := newViews("a", "b", "c")
	a, b, c := v[0], v[1], v[2]
	for i := 0; i < 3; i++ {
		if err := a.AddUnderlay(b); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.AddUnderlay(b); err != nil {
		t.Fatal(err)
	}
	if err := b.AddUnderlay(a); err != nil {
		t.Fatal(err)
	}
	assertViews(t, "a sources", a.Sources(), b)
	assertViews(t, "a mirrors", a.Mirrors(), b)
	assertViews(t, "b sources", b.Sources(), a)
	assertViews(t, "b mirrors", b.Mirrors(), a, c)
	assertViews(t, "c sources", c.Sources(), b)
	assertViews(t, "c mirrors", c.Mirrors())
}

func TestSelfUnderlay(t *testing.T) {
	a := newViews("a")[0]
	if err := a.AddUnderlay(a); !errors.Is(err, axis.ErrSelfUnderlay) {
		t.Fatalf("expected ErrSelfUnderlay, got %v", err)
	}
	assertViews(t, "sources", a.Sources())
	assertViews(t, "mirrors", a.Mirrors())
	a.Underlay(a).Set(true)
	assertViews(t, "sources", a.Sources())
}

func TestRemoveUnderlay(t *testing.T) {
	v := newViews("a", "b", "c")
	a, b, c := v[0], v[1], v[2]
	a.AddUnderlay(b)
	a.AddUnderlay(c)
	a.RemoveUnderlay(b)
	a.RemoveUnderlay(b)
	b.RemoveUnderlay(a)
	assertViews(t, "a sources", a.Sources(), c)
	assertViews(t, "b mirrors", b.Mirrors())
	assertViews(t, "c mirrors", c.Mirrors(), a)
	a.ClearUnderlays().Do()
	assertViews(t, "a sources", a.Sources())
	assertViews(t, "c mirrors", c.Mirrors())
	if a.ClearUnderlays().Enabled() {
		t.Fatal("clearing should be disabled with no underlays")
	}
}

func TestDestroyTearsDownUnderlays(t *testing.T) {
	v := newViews("v", "s1", "s2", "m1")
	view, s1, s2, m1 := v[0], v[1], v[2], v[3]
	view.AddUnderlay(s1)
	view.AddUnderlay(s2)
	m1.AddUnderlay(view)
	view.Destroy()
	assertViews(t, "s1 mirrors", s1.Mirrors())
	assertViews(t, "s2 mirrors", s2.Mirrors())
	assertViews(t, "m1 sources", m1.Sources())
	assertViews(t, "view sources", view.Sources())
	assertViews(t, "view mirrors", view.Mirrors())
	if err := m1.AddUnderlay(view); err != nil {
		t.Fatal(err)
	}
	assertViews(t, "m1 sources", m1.Sources())
	if m1.Underlay(view).Enabled() {
		t.Fatal("a destroyed view should not be offered as underlay")
	}
}

func TestUnderlayBool(t *testing.T) {
	v := newViews("a", "b")
	a, b := v[0], v[1]
	u := a.Underlay(b)
	u.Toggle()
	if !u.Value() {
		t.Fatal("b should be an underlay of a")
	}
	assertViews(t, "b mirrors", b.Mirrors(), a)
	u.Toggle()
	if u.Value() {
		t.Fatal("b should no longer be an underlay of a")
	}
	assertViews(t, "b mirrors", b.Mirrors())
	a.AddUnderlayAction(b).Do()
	assertViews(t, "a sources", a.Sources(), b)
	if a.AddUnderlayAction(a).Enabled() {
		t.Fatal("a track cannot be offered as its own underlay")
	}
}

func TestDestroyedViewRealizesNothing(t *testing.T) {
	c := newCountingRealizer()
	route := timeaxis.NewRoute("a")
	v := axis.NewTrackView(route, c)
	v.Destroy()
	if v.ShowAutomation(timeaxis.RouteParam(timeaxis.GainAutomation)) {
		t.Fatal("a destroyed view should not show lanes")
	}
	v.ToggleAutomation(timeaxis.RouteParam(timeaxis.PanAutomation))
	amp := timeaxis.NewProcessor("Amp", 0)
	v.ProcessorAdded(amp)
	v.ProcessorParamsChanged(amp)
	if len(c.live) != 0 {
		t.Fatalf("expected no realized lanes, got %v", c.live)
	}
	if v.Registry().Processor(amp.ID) != nil {
		t.Fatal("a destroyed view should not track new processors")
	}
}
