package axis

import (
	"log"

	"github.com/timeaxis/timeaxis"
	"gitlab.com/gomidi/midi/v2"
)

const (
	DefaultTrackHeight = 68
	MinTrackHeight     = 10
)

// TrackView is the model of one track on the editor timeline. It shows a
// route, owns the Registry of the route's automation lanes, and takes part in
// the underlay relation with other track views.
type TrackView struct {
	name     string
	registry *Registry
	height   int

	// sources are the tracks drawn under this one, mirrors the tracks that
	// draw this one under them.
	sources []*TrackView
	mirrors []*TrackView

	destroyed bool
}

// NewTrackView returns a view of the route with all lanes hidden. The route
// processors are copied; later changes to them reach the view through
// ProcessorAdded, ProcessorRemoved and ProcessorParamsChanged.
func NewTrackView(route timeaxis.Route, realizer Realizer) *TrackView {
	v := &TrackView{
		name:     route.Name,
		registry: NewRegistry(realizer, route.Params...),
		height:   DefaultTrackHeight,
	}
	for i := range route.Processors {
		p := route.Processors[i].Copy()
		if err := v.registry.ProcessorAdded(&p); err != nil {
			log.Printf("track %q: %v", v.name, err)
		}
	}
	return v
}

func (v *TrackView) Name() string         { return v.name }
func (v *TrackView) Registry() *Registry  { return v.registry }
func (v *TrackView) Height() int          { return v.height }
func (v *TrackView) Destroyed() bool      { return v.destroyed }
func (v *TrackView) SetHeight(height int) { v.height = max(height, MinTrackHeight) }

// Route returns the route as the view currently knows it: the route controls
// and the processors that are still on the route.
func (v *TrackView) Route() timeaxis.Route {
	ret := timeaxis.Route{Name: v.name, Params: v.registry.RouteParams()}
	for _, a := range v.registry.Processors() {
		ret.Processors = append(ret.Processors, a.Processor().Copy())
	}
	return ret
}

// ToggleAutomation toggles the lane of p. Misuse, e.g. toggling a parameter
// of a removed processor, is logged and otherwise ignored.
func (v *TrackView) ToggleAutomation(p timeaxis.Param) {
	if v.destroyed {
		return
	}
	if _, err := v.registry.Toggle(p); err != nil {
		log.Printf("track %q: %v", v.name, err)
	}
}

// ShowAutomation shows the lane of p and reports whether it is now shown.
// Destroyed views show nothing.
func (v *TrackView) ShowAutomation(p timeaxis.Param) bool {
	if v.destroyed {
		return false
	}
	if _, err := v.registry.Show(p); err != nil {
		log.Printf("track %q: %v", v.name, err)
		return false
	}
	return true
}

// ProcessorAdded is called when a processor is inserted on the route.
func (v *TrackView) ProcessorAdded(proc *timeaxis.Processor) {
	if v.destroyed {
		return
	}
	if err := v.registry.ProcessorAdded(proc); err != nil {
		log.Printf("track %q: %v", v.name, err)
		return
	}
	v.registry.Realize()
}

// ProcessorParamsChanged is called when a processor publishes new parameters.
func (v *TrackView) ProcessorParamsChanged(proc *timeaxis.Processor) {
	if v.destroyed {
		return
	}
	if err := v.registry.ProcessorParamsChanged(proc); err != nil {
		log.Printf("track %q: %v", v.name, err)
		return
	}
	v.registry.Realize()
}

// ProcessorRemoved is called when a processor is removed from the route.
func (v *TrackView) ProcessorRemoved(id timeaxis.ProcessorID) {
	if !v.registry.ProcessorRemoved(id) {
		log.Printf("track %q: removed processor %q was not on the track", v.name, id)
	}
}

// Learn shows the lane a MIDI message would automate, e.g. the lane of the
// controller that was just moved. MIDI lanes are created on demand, as a
// track does not know in advance which controllers will be used. Returns
// false if the message does not map to an automatable control.
func (v *TrackView) Learn(msg midi.Message) bool {
	p, ok := ParamFromMIDI(msg)
	if !ok || v.destroyed {
		return false
	}
	if !v.registry.AddRouteParam(p) {
		return false
	}
	return v.ShowAutomation(p)
}

// State returns the persisted state of the view. Underlay sources are
// stored by route name.
func (v *TrackView) State() timeaxis.TrackState {
	s := timeaxis.TrackState{
		Route:          v.name,
		ShowAutomation: v.registry.PersistState(),
	}
	if v.height != DefaultTrackHeight {
		s.Height = v.height
	}
	for _, src := range v.sources {
		s.Underlays = append(s.Underlays, src.name)
	}
	return s
}

// SetState restores the lanes and the height of the view and realizes the
// visible lanes. Underlays refer to other tracks by name and are restored by
// the Editor.
func (v *TrackView) SetState(s timeaxis.TrackState) {
	v.height = DefaultTrackHeight
	if s.Height > 0 {
		v.SetHeight(s.Height)
	}
	v.registry.RestoreState(s.ShowAutomation)
	v.registry.Purge()
	v.registry.Realize()
}

// Destroy releases all realized lanes and removes the view from the
// underlay relation in both directions: no source keeps it as a mirror and no
// mirror keeps it as a source.
func (v *TrackView) Destroy() {
	if v.destroyed {
		return
	}
	for _, src := range v.sources {
		src.mirrors = removeView(src.mirrors, v)
	}
	for _, m := range v.mirrors {
		m.sources = removeView(m.sources, v)
	}
	v.sources, v.mirrors = nil, nil
	v.registry.release()
	v.destroyed = true
}
