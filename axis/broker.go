package axis

import (
	"time"

	"github.com/timeaxis/timeaxis"
)

type (
	// Broker carries messages from the session engine to the editor. The
	// engine runs on its own goroutines and may add or remove processors at
	// any time; it never touches track views, but sends a MsgToEditor to
	// ToEditor. The GUI goroutine applies the messages one at a time with
	// Editor.ProcessMsg, so the views only ever see complete changes.
	//
	// For closing the editor loop started with Editor.Run, there are two
	// channels: CloseEditor and FinishedEditor. CloseEditor has a capacity of
	// 1, so you can always send an empty message (struct{}{}) to it without
	// blocking. If the channel is already full, someone else has already
	// requested the closure, so dropping the message is fine. FinishedEditor
	// is closed when the loop has returned. Nothing is ever sent to it. You
	// can wait for the loop with a timeout:
	//    select {
	//      case <-FinishedEditor:
	//      case <-time.After(3 * time.Second):
	//    }
	Broker struct {
		ToEditor chan MsgToEditor

		CloseEditor    chan struct{}
		FinishedEditor chan struct{}
	}

	// MsgToEditor is a message from the session to the track view showing
	// Route. Data is one of the *Msg types below.
	MsgToEditor struct {
		Route string
		Data  any
	}

	// RouteAddedMsg adds a track view for a new route. MsgToEditor.Route is
	// ignored.
	RouteAddedMsg struct {
		Route timeaxis.Route
	}

	// RouteRemovedMsg destroys the track view of the route.
	RouteRemovedMsg struct{}

	ProcessorAddedMsg struct {
		Processor *timeaxis.Processor
	}

	ProcessorRemovedMsg struct {
		ID timeaxis.ProcessorID
	}

	// ProcessorParamsMsg tells that a processor has published new
	// parameters.
	ProcessorParamsMsg struct {
		Processor *timeaxis.Processor
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToEditor:       make(chan MsgToEditor, 1024),
		CloseEditor:    make(chan struct{}, 1),
		FinishedEditor: make(chan struct{}),
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
