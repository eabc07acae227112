package axis

import (
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/timeaxis/timeaxis"
)

// Editor holds the track views of the editor timeline, one per route, in
// display order. It is owned by the GUI goroutine.
type Editor struct {
	broker   *Broker
	realizer Realizer
	views    []*TrackView
}

// NewEditor returns an editor with no tracks. The broker can be nil if the
// editor is driven only by direct calls.
func NewEditor(broker *Broker, realizer Realizer) *Editor {
	if realizer == nil {
		realizer = NullRealizer{}
	}
	return &Editor{broker: broker, realizer: realizer}
}

// NewEditorFromSession returns an editor with a track view for every route
// of the session.
func NewEditorFromSession(broker *Broker, realizer Realizer, s timeaxis.Session) (*Editor, error) {
	e := NewEditor(broker, realizer)
	for _, r := range s.Routes {
		if _, err := e.AddRoute(r); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// AddRoute appends a track view for the route.
func (e *Editor) AddRoute(route timeaxis.Route) (*TrackView, error) {
	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("add route: %w", err)
	}
	if e.View(route.Name) != nil {
		return nil, fmt.Errorf("add route: track %q already exists", route.Name)
	}
	v := NewTrackView(route, e.realizer)
	e.views = append(e.views, v)
	return v, nil
}

// RemoveRoute destroys the track view of the route. Returns false if there
// is no such track.
func (e *Editor) RemoveRoute(name string) bool {
	i := slices.IndexFunc(e.views, func(v *TrackView) bool { return v.name == name })
	if i < 0 {
		return false
	}
	e.views[i].Destroy()
	e.views = slices.Delete(e.views, i, i+1)
	return true
}

// View returns the track view of the route, or nil.
func (e *Editor) View(name string) *TrackView {
	for _, v := range e.views {
		if v.name == name {
			return v
		}
	}
	return nil
}

// Views returns the track views in display order.
func (e *Editor) Views() []*TrackView { return slices.Clone(e.views) }

// ProcessMsg applies a message from the session. Messages for unknown routes
// are logged and dropped.
func (e *Editor) ProcessMsg(msg MsgToEditor) {
	if m, ok := msg.Data.(RouteAddedMsg); ok {
		if _, err := e.AddRoute(m.Route); err != nil {
			log.Printf("editor: %v", err)
		}
		return
	}
	v := e.View(msg.Route)
	if v == nil {
		log.Printf("editor: message %T for unknown track %q", msg.Data, msg.Route)
		return
	}
	switch m := msg.Data.(type) {
	case RouteRemovedMsg:
		e.RemoveRoute(msg.Route)
	case ProcessorAddedMsg:
		v.ProcessorAdded(m.Processor)
	case ProcessorRemovedMsg:
		v.ProcessorRemoved(m.ID)
	case ProcessorParamsMsg:
		v.ProcessorParamsChanged(m.Processor)
	default:
		log.Printf("editor: unknown message %T", msg.Data)
	}
}

// Drain applies all messages waiting in the broker without blocking and
// returns how many there were. The GUI calls this once per frame.
func (e *Editor) Drain() int {
	if e.broker == nil {
		return 0
	}
	n := 0
	for {
		select {
		case msg := <-e.broker.ToEditor:
			e.ProcessMsg(msg)
			n++
		default:
			return n
		}
	}
}

// Run applies messages from the broker until CloseEditor is signaled, for
// programs where the editor model has a goroutine of its own. Run closes
// FinishedEditor when it returns. Without a broker, Run returns at once.
func (e *Editor) Run() {
	if e.broker == nil {
		return
	}
	defer close(e.broker.FinishedEditor)
	for {
		select {
		case msg := <-e.broker.ToEditor:
			e.ProcessMsg(msg)
		case <-e.broker.CloseEditor:
			e.Drain()
			return
		}
	}
}

// State returns the persisted state of all track views.
func (e *Editor) State() timeaxis.ViewState {
	var s timeaxis.ViewState
	for _, v := range e.views {
		s.Tracks = append(s.Tracks, v.State())
	}
	return s
}

// SetState restores all track views. Tracks missing from the state are reset
// to show no lanes. Underlays are restored after all tracks, as they refer
// to each other by name; underlays of unknown tracks are dropped.
func (e *Editor) SetState(s timeaxis.ViewState) {
	for _, v := range e.views {
		ts := s.Track(v.name)
		if ts == nil {
			ts = &timeaxis.TrackState{Route: v.name}
		}
		v.SetState(*ts)
		for _, src := range v.Sources() {
			v.RemoveUnderlay(src)
		}
	}
	for _, v := range e.views {
		ts := s.Track(v.name)
		if ts == nil {
			continue
		}
		for _, name := range ts.Underlays {
			src := e.View(name)
			if src == nil {
				log.Printf("track %q: underlay %q does not exist", v.name, name)
				continue
			}
			if err := v.AddUnderlay(src); err != nil {
				log.Printf("track %q: %v", v.name, err)
			}
		}
	}
}

// ReadState reads a view state document and restores it.
func (e *Editor) ReadState(r io.Reader) error {
	s, err := timeaxis.ReadViewState(r)
	if err != nil {
		return err
	}
	e.SetState(s)
	return nil
}

// WriteState writes the state of all track views, as json if ext is ".json"
// and as yaml otherwise.
func (e *Editor) WriteState(w io.Writer, ext string) error {
	s := e.State()
	return s.Write(w, ext)
}
