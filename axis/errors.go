package axis

import "errors"

var (
	// ErrUnknownParameter is returned when the automation parameter has never
	// been registered with the track.
	ErrUnknownParameter = errors.New("unknown automation parameter")

	// ErrStaleProcessor is returned when the parameter belongs to a processor
	// that has already been removed from the route.
	ErrStaleProcessor = errors.New("stale processor reference")

	// ErrSelfUnderlay is returned when a track view is asked to show itself as
	// its own underlay.
	ErrSelfUnderlay = errors.New("track cannot underlay itself")
)
