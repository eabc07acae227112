package axis

import (
	"fmt"
	"slices"
)

// AddUnderlay draws source under this track. The relation is symmetric:
// source gets this track as a mirror. Adding a source twice is a no-op, and
// so is adding to or from a destroyed view.
func (v *TrackView) AddUnderlay(source *TrackView) error {
	if source == v {
		return fmt.Errorf("track %q: %w", v.name, ErrSelfUnderlay)
	}
	if source == nil || v.destroyed || source.destroyed || v.hasSource(source) {
		return nil
	}
	v.sources = append(v.sources, source)
	source.mirrors = append(source.mirrors, v)
	return nil
}

// RemoveUnderlay stops drawing source under this track, removing the
// relation on both sides. Removing a source that is not there is a no-op.
func (v *TrackView) RemoveUnderlay(source *TrackView) {
	if source == nil || !v.hasSource(source) {
		return
	}
	v.sources = removeView(v.sources, source)
	source.mirrors = removeView(source.mirrors, v)
}

// Sources returns the tracks drawn under this one, in the order they were
// added.
func (v *TrackView) Sources() []*TrackView { return slices.Clone(v.sources) }

// Mirrors returns the tracks that draw this one under them.
func (v *TrackView) Mirrors() []*TrackView { return slices.Clone(v.mirrors) }

func (v *TrackView) hasSource(source *TrackView) bool {
	return slices.Contains(v.sources, source)
}

func removeView(views []*TrackView, v *TrackView) []*TrackView {
	return slices.DeleteFunc(views, func(w *TrackView) bool { return w == v })
}
