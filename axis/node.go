package axis

import "github.com/timeaxis/timeaxis"

type (
	// SubView is the on-screen lane of one automation parameter. It is
	// created and owned by the rendering layer; nodes only borrow it between
	// Realize and Release.
	SubView interface {
		Param() timeaxis.Param
	}

	// Realizer creates and releases the on-screen lanes for automation
	// parameters. Realize is called when a lane becomes visible and has no
	// lane yet, Release when a visible lane is hidden or its track goes away.
	Realizer interface {
		Realize(p timeaxis.Param) SubView
		Release(v SubView)
	}

	// NullRealizer is a Realizer that creates placeholder lanes, for running
	// the model without a GUI.
	NullRealizer struct{}

	nullSubView timeaxis.Param

	// Node is the automation state of one parameter: whether its lane is
	// shown, and the realized lane if there is one. If a node has a view, it
	// is visible. A node can however be visible without a view, e.g. when
	// the state has been restored but the lane has not been realized yet.
	Node struct {
		param   timeaxis.Param
		visible bool
		view    SubView
	}
)

func (NullRealizer) Realize(p timeaxis.Param) SubView { return nullSubView(p) }
func (NullRealizer) Release(SubView)                  {}

func (v nullSubView) Param() timeaxis.Param { return timeaxis.Param(v) }

func newNode(p timeaxis.Param) *Node { return &Node{param: p} }

func (n *Node) Param() timeaxis.Param { return n.param }
func (n *Node) Visible() bool         { return n.visible }
func (n *Node) View() SubView         { return n.view }

func (n *Node) show(r Realizer) SubView {
	n.visible = true
	if n.view == nil {
		n.view = r.Realize(n.param)
	}
	return n.view
}

func (n *Node) hide(r Realizer) {
	n.release(r)
	n.visible = false
}

// release drops the realized lane but keeps the visibility, so that the lane
// can be realized again later.
func (n *Node) release(r Realizer) {
	if n.view != nil {
		r.Release(n.view)
		n.view = nil
	}
}
