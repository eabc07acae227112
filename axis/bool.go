package axis

import (
	"log"

	"github.com/timeaxis/timeaxis"
)

type (
	// Bool is a boolean the UI can show as a check box or a toggle button.
	Bool struct {
		BoolData
	}

	BoolData interface {
		Value() bool
		Enabled() bool
		setValue(bool)
	}

	laneVisible struct {
		view  *TrackView
		param timeaxis.Param
	}

	underlayShown struct {
		view, source *TrackView
	}
)

func (v Bool) Toggle() {
	v.Set(!v.Value())
}

func (v Bool) Set(value bool) {
	if v.Enabled() && v.Value() != value {
		v.setValue(value)
	}
}

// Lane returns a Bool telling whether the automation lane of p is shown on
// this track. It is disabled for parameters the track does not know and for
// parameters of removed processors, so setting it is then a no-op.
func (v *TrackView) Lane(p timeaxis.Param) Bool { return Bool{&laneVisible{v, p}} }

func (l *laneVisible) Value() bool   { return l.view.registry.Visible(l.param) }
func (l *laneVisible) Enabled() bool { return !l.view.destroyed && l.view.registry.Known(l.param) }
func (l *laneVisible) setValue(val bool) {
	var err error
	if val {
		_, err = l.view.registry.Show(l.param)
	} else {
		err = l.view.registry.Hide(l.param)
	}
	if err != nil {
		log.Printf("track %q: %v", l.view.Name(), err)
	}
}

// Underlay returns a Bool telling whether source is drawn under this track,
// for check boxes in the underlay menu.
func (v *TrackView) Underlay(source *TrackView) Bool { return Bool{&underlayShown{v, source}} }

func (u *underlayShown) Value() bool { return u.view.hasSource(u.source) }
func (u *underlayShown) Enabled() bool {
	return u.source != nil && u.source != u.view && !u.view.destroyed && !u.source.destroyed
}
func (u *underlayShown) setValue(val bool) {
	if !val {
		u.view.RemoveUnderlay(u.source)
		return
	}
	if err := u.view.AddUnderlay(u.source); err != nil {
		log.Printf("track %q: %v", u.view.Name(), err)
	}
}
