package timeaxis

import (
	"errors"
	"fmt"
)

type (
	// Route is a mixer strip: an audio or MIDI track or a bus. Params lists
	// the automatable controls of the route itself, Processors the processors
	// inserted on it, in signal flow order.
	Route struct {
		Name       string
		Params     []Param     `yaml:",flow"`
		Processors []Processor `yaml:",omitempty"`
	}

	// Session is the part of a session document the editor needs: the routes
	// and their processors.
	Session struct {
		Routes []Route
	}
)

// DefaultRouteParams returns the controls every route has: gain, pan and
// mute.
func DefaultRouteParams() []Param {
	return []Param{
		RouteParam(GainAutomation),
		RouteParam(PanAutomation),
		RouteParam(MuteAutomation),
	}
}

// NewRoute returns a route with the default controls and no processors.
func NewRoute(name string) Route {
	return Route{Name: name, Params: DefaultRouteParams()}
}

// Processor returns the processor with the given id, or nil.
func (r *Route) Processor(id ProcessorID) *Processor {
	for i := range r.Processors {
		if r.Processors[i].ID == id {
			return &r.Processors[i]
		}
	}
	return nil
}

// Validate checks that all route params are route level identities and that
// processor ids are unique.
func (r *Route) Validate() error {
	if r.Name == "" {
		return errors.New("route has no name")
	}
	for _, p := range r.Params {
		if !p.Valid() || p.IsProcessorParam() {
			return fmt.Errorf("route %q: %v is not a route parameter", r.Name, p)
		}
	}
	seen := map[ProcessorID]bool{}
	for i := range r.Processors {
		if err := r.Processors[i].Validate(); err != nil {
			return fmt.Errorf("route %q: %w", r.Name, err)
		}
		if seen[r.Processors[i].ID] {
			return fmt.Errorf("route %q: duplicate processor id %q", r.Name, r.Processors[i].ID)
		}
		seen[r.Processors[i].ID] = true
	}
	return nil
}

// Copy makes a deep copy of a route.
func (r *Route) Copy() Route {
	params := make([]Param, len(r.Params))
	copy(params, r.Params)
	processors := make([]Processor, len(r.Processors))
	for i := range r.Processors {
		processors[i] = r.Processors[i].Copy()
	}
	return Route{Name: r.Name, Params: params, Processors: processors}
}

// Validate validates every route and checks that route names are unique.
func (s *Session) Validate() error {
	seen := map[string]bool{}
	for i := range s.Routes {
		if err := s.Routes[i].Validate(); err != nil {
			return err
		}
		if seen[s.Routes[i].Name] {
			return fmt.Errorf("duplicate route name %q", s.Routes[i].Name)
		}
		seen[s.Routes[i].Name] = true
	}
	return nil
}
