package timeaxis

import (
	"fmt"

	"github.com/google/uuid"
)

type (
	// ProcessorID identifies a processor (plugin, send, insert) across the
	// session. It is stable over save and load, so that persisted automation
	// lanes of the processor can be matched back to it.
	ProcessorID string

	// Processor is a plugin or other signal processor inserted on a route.
	// The session model owns processors; views only keep pointers to them.
	Processor struct {
		ID   ProcessorID
		Name string `yaml:",omitempty"`
		Type string `yaml:",omitempty"`

		// Params lists the automatable parameters of the processor. Plugins
		// may publish their parameters only after they have been loaded, so
		// Params can be empty at first and grow later.
		Params []Param `yaml:",flow,omitempty"`

		// Labels names the parameters by port number, for menus.
		Labels map[uint32]string `yaml:",omitempty"`
	}
)

// NewProcessorID mints a fresh, globally unique processor id.
func NewProcessorID() ProcessorID {
	return ProcessorID(uuid.New().String())
}

// NewProcessor returns a processor with a fresh id and the given plugin ports
// as its automatable parameters.
func NewProcessor(name string, ports ...uint32) *Processor {
	p := &Processor{ID: NewProcessorID(), Name: name}
	for _, port := range ports {
		p.Params = append(p.Params, PluginParam(p.ID, port))
	}
	return p
}

// Param returns the identity of the parameter on the given port.
func (p *Processor) Param(port uint32) Param { return PluginParam(p.ID, port) }

// HasParam reports whether param is one of the published parameters of p.
func (p *Processor) HasParam(param Param) bool {
	for _, q := range p.Params {
		if q == param {
			return true
		}
	}
	return false
}

// Validate checks that the processor has an id and that every parameter is a
// plugin parameter owned by it.
func (p *Processor) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("processor %q has no id", p.Name)
	}
	for _, q := range p.Params {
		if q.Kind != PluginAutomation || q.Processor != p.ID {
			return fmt.Errorf("processor %q: parameter %v is not owned by it", p.ID, q)
		}
	}
	return nil
}

// Copy makes a deep copy of a processor.
func (p *Processor) Copy() Processor {
	params := make([]Param, len(p.Params))
	copy(params, p.Params)
	var labels map[uint32]string
	if p.Labels != nil {
		labels = make(map[uint32]string, len(p.Labels))
		for k, v := range p.Labels {
			labels[k] = v
		}
	}
	return Processor{ID: p.ID, Name: p.Name, Type: p.Type, Params: params, Labels: labels}
}
