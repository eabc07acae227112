package axis

import (
	"log"

	"github.com/timeaxis/timeaxis"
)

type (
	// Action describes a user action that can be performed on a track view,
	// initiated by calling the Do() method, usually from a button or a menu
	// item. Action advertises whether it is enabled, so the UI can gray out
	// menu items when the action is not allowed. The underlying Doer can
	// optionally implement the Enabler interface; if it does not, the action
	// is always allowed.
	Action struct {
		doer Doer
	}

	// Doer is an interface that defines a single Do() method, which is called
	// when an action is performed.
	Doer interface {
		Do()
	}

	// Enabler is an interface that defines a single Enabled() method, which
	// is used by the UI to check if an Action or a Bool is enabled.
	Enabler interface {
		Enabled() bool
	}
)

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

func (a Action) Do() {
	e, ok := a.doer.(Enabler)
	if ok && !e.Enabled() {
		return
	}
	if a.doer != nil {
		a.doer.Do()
	}
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true
	}
	return e.Enabled()
}

// showAll
type showAll TrackView

// ShowAll returns an Action to show the lanes of all automatable parameters
// of the track and its processors.
func (v *TrackView) ShowAll() Action { return MakeAction((*showAll)(v)) }
func (v *showAll) Enabled() bool     { return !v.destroyed }
func (v *showAll) Do()               { v.registry.ShowAll() }

// showExisting
type showExisting struct {
	view    *TrackView
	hasData func(timeaxis.Param) bool
}

// ShowExisting returns an Action to show the lanes of the parameters that
// have automation data, as told by hasData.
func (v *TrackView) ShowExisting(hasData func(timeaxis.Param) bool) Action {
	return MakeAction(&showExisting{view: v, hasData: hasData})
}
func (a *showExisting) Enabled() bool { return !a.view.destroyed && a.hasData != nil }
func (a *showExisting) Do()           { a.view.registry.ShowExisting(a.hasData) }

// hideAll
type hideAll TrackView

// HideAll returns an Action to hide all automation lanes of the track.
func (v *TrackView) HideAll() Action { return MakeAction((*hideAll)(v)) }
func (v *hideAll) Enabled() bool     { return !v.destroyed }
func (v *hideAll) Do()               { v.registry.HideAll() }

// clearUnderlays
type clearUnderlays TrackView

// ClearUnderlays returns an Action to stop drawing any other track under
// this one.
func (v *TrackView) ClearUnderlays() Action { return MakeAction((*clearUnderlays)(v)) }
func (v *clearUnderlays) Enabled() bool     { return len(v.sources) > 0 }
func (v *clearUnderlays) Do() {
	for _, s := range (*TrackView)(v).Sources() {
		(*TrackView)(v).RemoveUnderlay(s)
	}
}

// addUnderlay
type addUnderlay struct {
	view, source *TrackView
}

// AddUnderlayAction returns an Action to draw source under this track, for
// the underlay menu.
func (v *TrackView) AddUnderlayAction(source *TrackView) Action {
	return MakeAction(&addUnderlay{view: v, source: source})
}
func (a *addUnderlay) Enabled() bool {
	return a.source != nil && a.source != a.view && !a.view.destroyed && !a.source.destroyed
}
func (a *addUnderlay) Do() {
	if err := a.view.AddUnderlay(a.source); err != nil {
		log.Printf("track %q: %v", a.view.Name(), err)
	}
}
