/*
Package axis contains the GUI independent model behind the track views of the
editor timeline.

Every TrackView shows one route. Its Registry knows which automation lanes of
the route, and of each processor inserted on the route, are currently shown,
keeps that in sync with the persisted TrackState and asks a Realizer to create
or release the on-screen lane when a lane is shown or hidden. The registry
never draws anything itself.

Track views can also draw other tracks underneath them for visual
comparison. This underlay relation is symmetric and non-owning: when a view
lists another as an underlay source, the other lists it as a mirror, and both
sides forget each other when either view is destroyed.

All of the model is owned by the GUI goroutine. The session engine runs on
its own goroutines and never touches track views directly; it posts
MsgToEditor messages to the Broker, and the GUI goroutine applies them with
Editor.ProcessMsg. This way no menu is ever built over a half-updated list of
processors, and no locking is needed.

The GUI does not call Registry methods directly when reacting to user input.
It uses the Bool and Action values returned by e.g. view.Lane(param) and
view.HideAll(), which log misuse instead of propagating it:
view.Lane(param).Toggle() is what a menu checkbox calls.
*/
package axis
