package axis

import (
	"fmt"
	"log"
	"slices"

	"github.com/timeaxis/timeaxis"
)

// Registry keeps track of which automation lanes of a track are shown: the
// lanes of the route's own controls and the lanes of every processor inserted
// on the route. It is owned by a TrackView and lives as long as it.
//
// Parameters that are restored as visible before their processor has been
// added to the route are kept pending, and are shown when the processor
// arrives or publishes them.
type Registry struct {
	realizer   Realizer
	route      map[timeaxis.Param]*Node
	routeOrder []timeaxis.Param
	processors []*ProcessorAutomation
	pending    map[timeaxis.Param]struct{}
}

// NewRegistry returns a registry with nodes for the given route controls. A
// nil realizer is replaced by NullRealizer.
func NewRegistry(realizer Realizer, params ...timeaxis.Param) *Registry {
	if realizer == nil {
		realizer = NullRealizer{}
	}
	r := &Registry{
		realizer: realizer,
		route:    map[timeaxis.Param]*Node{},
		pending:  map[timeaxis.Param]struct{}{},
	}
	for _, p := range params {
		r.AddRouteParam(p)
	}
	return r
}

// AddRouteParam registers a control of the route itself, e.g. a MIDI
// controller the track has started to use. If the control was pending, it
// becomes visible. Returns false if p is not a route level identity.
func (r *Registry) AddRouteParam(p timeaxis.Param) bool {
	if !p.Valid() || p.IsProcessorParam() {
		return false
	}
	if _, ok := r.route[p]; ok {
		return true
	}
	n := newNode(p)
	r.route[p] = n
	r.routeOrder = append(r.routeOrder, p)
	r.resolvePending(n)
	return true
}

// RouteParams returns the route controls in the order they were registered.
func (r *Registry) RouteParams() []timeaxis.Param {
	return slices.Clone(r.routeOrder)
}

// RouteNode returns the node of a route control, or nil.
func (r *Registry) RouteNode(p timeaxis.Param) *Node { return r.route[p] }

// Processors returns the automation infos of the processors currently on the
// route, in the order they were added. Removed processors are not included.
func (r *Registry) Processors() []*ProcessorAutomation {
	ret := make([]*ProcessorAutomation, 0, len(r.processors))
	for _, a := range r.processors {
		if a.valid {
			ret = append(ret, a)
		}
	}
	return ret
}

// Processor returns the automation info of a processor currently on the
// route, or nil.
func (r *Registry) Processor(id timeaxis.ProcessorID) *ProcessorAutomation {
	for _, a := range r.processors {
		if a.valid && a.processor.ID == id {
			return a
		}
	}
	return nil
}

func (r *Registry) lookup(p timeaxis.Param) (*Node, error) {
	if !p.IsProcessorParam() {
		if n, ok := r.route[p]; ok {
			return n, nil
		}
		return nil, fmt.Errorf("%v: %w", p, ErrUnknownParameter)
	}
	stale := false
	for _, a := range r.processors {
		if a.processor.ID != p.Processor {
			continue
		}
		n := a.node(p)
		if n == nil {
			continue
		}
		if a.valid {
			return n, nil
		}
		stale = true
	}
	if stale {
		return nil, fmt.Errorf("%v: %w", p, ErrStaleProcessor)
	}
	return nil, fmt.Errorf("%v: %w", p, ErrUnknownParameter)
}

// Known reports whether p can be shown and hidden, i.e. it is a route control
// or a parameter of a processor that is still on the route.
func (r *Registry) Known(p timeaxis.Param) bool {
	_, err := r.lookup(p)
	return err == nil
}

// Show makes the lane of p visible, realizing it if needed, and returns the
// lane. Showing a lane that is already shown returns the same lane.
func (r *Registry) Show(p timeaxis.Param) (SubView, error) {
	n, err := r.lookup(p)
	if err != nil {
		return nil, fmt.Errorf("show: %w", err)
	}
	return n.show(r.realizer), nil
}

// Hide hides the lane of p and releases it. The node itself is kept, so the
// lane can be shown again later.
func (r *Registry) Hide(p timeaxis.Param) error {
	n, err := r.lookup(p)
	if err != nil {
		return fmt.Errorf("hide: %w", err)
	}
	n.hide(r.realizer)
	return nil
}

// Toggle shows the lane of p if it is hidden and hides it otherwise. Returns
// the new visibility.
func (r *Registry) Toggle(p timeaxis.Param) (bool, error) {
	n, err := r.lookup(p)
	if err != nil {
		return false, fmt.Errorf("toggle: %w", err)
	}
	if n.visible {
		n.hide(r.realizer)
	} else {
		n.show(r.realizer)
	}
	return n.visible, nil
}

// Visible reports whether the lane of p is shown. Unknown and stale
// parameters are never visible.
func (r *Registry) Visible(p timeaxis.Param) bool {
	n, err := r.lookup(p)
	return err == nil && n.visible
}

// View returns the realized lane of p, or nil if it has none.
func (r *Registry) View(p timeaxis.Param) SubView {
	n, err := r.lookup(p)
	if err != nil {
		return nil
	}
	return n.view
}

// VisibleSet returns the visible parameters of the route and of the
// processors currently on it, sorted with timeaxis.Compare.
func (r *Registry) VisibleSet() []timeaxis.Param {
	var ret []timeaxis.Param
	r.eachNode(func(n *Node) {
		if n.visible {
			ret = append(ret, n.param)
		}
	})
	slices.SortFunc(ret, timeaxis.Compare)
	return ret
}

// Pending returns the parameters restored as visible whose processor has not
// been added or has not published them yet, sorted.
func (r *Registry) Pending() []timeaxis.Param {
	ret := make([]timeaxis.Param, 0, len(r.pending))
	for p := range r.pending {
		ret = append(ret, p)
	}
	slices.SortFunc(ret, timeaxis.Compare)
	return ret
}

// eachNode calls f for every route node and every node of a valid processor.
func (r *Registry) eachNode(f func(*Node)) {
	for _, p := range r.routeOrder {
		f(r.route[p])
	}
	for _, a := range r.processors {
		if !a.valid {
			continue
		}
		for _, n := range a.nodes {
			f(n)
		}
	}
}

// ProcessorAdded starts tracking the automation of a processor inserted on
// the route. Nodes are created for the parameters the processor has already
// published; pending parameters of the processor become visible. Adding a
// processor that is already tracked only picks up its new parameters.
func (r *Registry) ProcessorAdded(proc *timeaxis.Processor) error {
	if proc == nil {
		return fmt.Errorf("processor added: nil processor")
	}
	if err := proc.Validate(); err != nil {
		return fmt.Errorf("processor added: %w", err)
	}
	if a := r.Processor(proc.ID); a != nil {
		a.processor = proc
		r.addProcessorParams(a)
		return nil
	}
	// a processor coming back (e.g. undo of a removal) replaces its stale info
	r.processors = slices.DeleteFunc(r.processors, func(a *ProcessorAutomation) bool {
		return a.processor.ID == proc.ID
	})
	a := &ProcessorAutomation{processor: proc, valid: true}
	r.processors = append(r.processors, a)
	r.addProcessorParams(a)
	return nil
}

// ProcessorParamsChanged is called when a processor publishes new
// parameters, which plugins may do some time after they have been loaded.
func (r *Registry) ProcessorParamsChanged(proc *timeaxis.Processor) error {
	return r.ProcessorAdded(proc)
}

func (r *Registry) addProcessorParams(a *ProcessorAutomation) {
	for _, n := range a.addParams() {
		r.resolvePending(n)
	}
}

func (r *Registry) resolvePending(n *Node) {
	if _, ok := r.pending[n.param]; ok {
		delete(r.pending, n.param)
		n.visible = true
	}
}

// ProcessorRemoved invalidates the automation info of a processor that has
// been removed from the route and hides all its lanes, also the pending ones
// it never published. The info is kept until Purge. Returns false if the
// processor was not on the route.
func (r *Registry) ProcessorRemoved(id timeaxis.ProcessorID) bool {
	for p := range r.pending {
		if p.Processor == id {
			delete(r.pending, p)
		}
	}
	found := false
	for _, a := range r.processors {
		if !a.valid || a.processor.ID != id {
			continue
		}
		a.valid = false
		for _, n := range a.nodes {
			n.hide(r.realizer)
		}
		found = true
	}
	return found
}

// Purge forgets the automation infos of removed processors.
func (r *Registry) Purge() {
	r.processors = slices.DeleteFunc(r.processors, func(a *ProcessorAutomation) bool {
		return !a.valid
	})
}

// RestoreState makes exactly the given parameters visible. Lanes are not
// realized here; call Realize once the track is ready to show them.
// Parameters that are not known yet are kept pending until their processor
// or route control is added.
func (r *Registry) RestoreState(params []timeaxis.Param) {
	want := map[timeaxis.Param]bool{}
	for _, p := range params {
		if !p.Valid() {
			log.Printf("restoring automation state: skipping invalid parameter %v", p)
			continue
		}
		want[p] = true
	}
	clear(r.pending)
	r.eachNode(func(n *Node) {
		if want[n.param] {
			n.visible = true
			delete(want, n.param)
		} else {
			n.hide(r.realizer)
		}
	})
	for p := range want {
		r.pending[p] = struct{}{}
	}
}

// PersistState returns the parameters to save as visible: the visible set,
// plus the pending parameters, which would otherwise be lost when a session
// is saved before all its plugins have published their parameters. The
// result is sorted and thus independent of the order lanes were shown in.
func (r *Registry) PersistState() []timeaxis.Param {
	ret := r.VisibleSet()
	for p := range r.pending {
		ret = append(ret, p)
	}
	return timeaxis.SortParams(ret)
}

// Realize realizes the lanes of all visible nodes that do not have one yet.
func (r *Registry) Realize() {
	r.eachNode(func(n *Node) {
		if n.visible {
			n.show(r.realizer)
		}
	})
}

// ShowAll shows the lanes of all route controls and all processor
// parameters.
func (r *Registry) ShowAll() {
	r.eachNode(func(n *Node) { n.show(r.realizer) })
}

// ShowExisting shows the lanes of the parameters that have automation data,
// as told by hasData. Other lanes are left as they are.
func (r *Registry) ShowExisting(hasData func(timeaxis.Param) bool) {
	r.eachNode(func(n *Node) {
		if hasData(n.param) {
			n.show(r.realizer)
		}
	})
}

// HideAll hides all lanes and forgets the pending ones.
func (r *Registry) HideAll() {
	clear(r.pending)
	r.eachNode(func(n *Node) { n.hide(r.realizer) })
}

// release releases every realized lane, also those of removed processors,
// without changing visibility.
func (r *Registry) release() {
	for _, n := range r.route {
		n.release(r.realizer)
	}
	for _, a := range r.processors {
		for _, n := range a.nodes {
			n.release(r.realizer)
		}
	}
}
