package timeaxis

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

type (
	// TrackState is the persisted view state of one track: which automation
	// lanes are shown and which other tracks are drawn underneath it. The
	// order of ShowAutomation carries no meaning; it is kept sorted so that
	// saving the same state twice produces the same document.
	TrackState struct {
		Route          string
		Height         int      `yaml:",omitempty" json:",omitempty"`
		ShowAutomation []Param  `yaml:",flow,omitempty" json:",omitempty"`
		Underlays      []string `yaml:",flow,omitempty" json:",omitempty"`
	}

	// ViewState is the persisted view state of all tracks in the editor.
	ViewState struct {
		Tracks []TrackState
	}
)

// SortParams sorts params in place and removes duplicates. The result is the
// canonical, order-independent form of a set of Params.
func SortParams(params []Param) []Param {
	slices.SortFunc(params, Compare)
	return slices.Compact(params)
}

// Track returns the state of the track showing the given route, or nil.
func (v *ViewState) Track(route string) *TrackState {
	for i := range v.Tracks {
		if v.Tracks[i].Route == route {
			return &v.Tracks[i]
		}
	}
	return nil
}

// ReadViewState reads a view state document, trying json first and then
// yaml.
func ReadViewState(r io.Reader) (ViewState, error) {
	var v ViewState
	if err := unmarshal(r, &v); err != nil {
		return ViewState{}, fmt.Errorf("could not read view state: %w", err)
	}
	for i := range v.Tracks {
		v.Tracks[i].ShowAutomation = SortParams(v.Tracks[i].ShowAutomation)
	}
	return v, nil
}

// Write writes the view state as json if ext is ".json", and as yaml
// otherwise.
func (v *ViewState) Write(w io.Writer, ext string) error {
	return marshal(w, v, ext)
}

// ReadSession reads a session document, trying json first and then yaml, and
// validates it.
func ReadSession(r io.Reader) (Session, error) {
	var s Session
	if err := unmarshal(r, &s); err != nil {
		return Session{}, fmt.Errorf("could not read session: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Session{}, fmt.Errorf("invalid session: %w", err)
	}
	return s, nil
}

// Write writes the session as json if ext is ".json", and as yaml otherwise.
func (s *Session) Write(w io.Writer, ext string) error {
	return marshal(w, s, ext)
}

func unmarshal(r io.Reader, out any) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if errJSON := json.Unmarshal(b, out); errJSON != nil {
		if errYaml := yaml.Unmarshal(b, out); errYaml != nil {
			return fmt.Errorf("%v / %v", errYaml, errJSON)
		}
	}
	return nil
}

func marshal(w io.Writer, in any, ext string) error {
	var contents []byte
	var err error
	if ext == ".json" {
		contents, err = json.MarshalIndent(in, "", "  ")
	} else {
		contents, err = yaml.Marshal(in)
	}
	if err != nil {
		return fmt.Errorf("could not marshal: %w", err)
	}
	if _, err := w.Write(contents); err != nil {
		return fmt.Errorf("could not write: %w", err)
	}
	return nil
}
