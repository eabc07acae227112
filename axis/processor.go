package axis

import "github.com/timeaxis/timeaxis"

// ProcessorAutomation holds the automation nodes of one processor inserted on
// the route. When the processor is removed from the route, the info is
// invalidated rather than dropped, as menus or lanes may still refer to it;
// the Registry purges invalid infos later.
type ProcessorAutomation struct {
	processor *timeaxis.Processor
	valid     bool
	nodes     []*Node
}

func (a *ProcessorAutomation) Processor() *timeaxis.Processor { return a.processor }
func (a *ProcessorAutomation) Valid() bool                    { return a.valid }

// Nodes returns the nodes in the order the processor published its
// parameters. The slice must not be modified.
func (a *ProcessorAutomation) Nodes() []*Node { return a.nodes }

func (a *ProcessorAutomation) node(p timeaxis.Param) *Node {
	for _, n := range a.nodes {
		if n.param == p {
			return n
		}
	}
	return nil
}

// addParams creates nodes for the published parameters that do not have one
// yet, and returns the new nodes.
func (a *ProcessorAutomation) addParams() []*Node {
	var added []*Node
	for _, p := range a.processor.Params {
		if a.node(p) != nil {
			continue
		}
		n := newNode(p)
		a.nodes = append(a.nodes, n)
		added = append(added, n)
	}
	return added
}
