package axis_test

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/timeaxis/timeaxis"
	"github.com/timeaxis/timeaxis/axis"
	"gitlab.com/gomidi/midi/v2"
)

func newSession() (timeaxis.Session, *timeaxis.Processor, *timeaxis.Processor) {
	reverb, eq := newReverbAndEQ()
	vocals := timeaxis.NewRoute("Vocals")
	vocals.Processors = []timeaxis.Processor{reverb.Copy(), eq.Copy()}
	return timeaxis.Session{Routes: []timeaxis.Route{
		vocals,
		timeaxis.NewRoute("Guitar"),
		timeaxis.NewRoute("Bass"),
	}}, reverb, eq
}

func TestEditorStateRoundTrip(t *testing.T) {
	session, reverb, _ := newSession()
	e, err := axis.NewEditorFromSession(nil, nil, session)
	if err != nil {
		t.Fatal(err)
	}
	vocals, guitar, bass := e.View("Vocals"), e.View("Guitar"), e.View("Bass")
	vocals.Lane(reverb.Param(1)).Set(true)
	vocals.Lane(gain).Set(true)
	vocals.SetHeight(120)
	vocals.AddUnderlay(guitar)
	bass.AddUnderlay(vocals)
	for _, ext := range []string{".yml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := e.WriteState(&buf, ext); err != nil {
				t.Fatal(err)
			}
			e2, err := axis.NewEditorFromSession(nil, nil, session)
			if err != nil {
				t.Fatal(err)
			}
			if err := e2.ReadState(&buf); err != nil {
				t.Fatal(err)
			}
			v2 := e2.View("Vocals")
			assertVisible(t, v2.Registry(), gain, reverb.Param(1))
			if v2.Height() != 120 {
				t.Fatalf("height = %d, want 120", v2.Height())
			}
			if v2.Registry().View(gain) == nil {
				t.Fatal("restored lanes should be realized")
			}
			assertViews(t, "vocals sources", v2.Sources(), e2.View("Guitar"))
			assertViews(t, "vocals mirrors", v2.Mirrors(), e2.View("Bass"))
			assertViews(t, "guitar mirrors", e2.View("Guitar").Mirrors(), v2)
		})
	}
}

func TestEditorSetStateResetsMissingTracks(t *testing.T) {
	session, _, _ := newSession()
	e, _ := axis.NewEditorFromSession(nil, nil, session)
	guitar := e.View("Guitar")
	guitar.ShowAll().Do()
	guitar.AddUnderlay(e.View("Bass"))
	e.SetState(timeaxis.ViewState{Tracks: []timeaxis.TrackState{
		{Route: "Vocals", Underlays: []string{"Nope", "Vocals", "Bass"}},
	}})
	assertVisible(t, guitar.Registry())
	assertViews(t, "guitar sources", guitar.Sources())
	assertViews(t, "vocals sources", e.View("Vocals").Sources(), e.View("Bass"))
	assertViews(t, "bass mirrors", e.View("Bass").Mirrors(), e.View("Vocals"))
}

func TestEditorProcessesBrokerMessages(t *testing.T) {
	session, reverb, eq := newSession()
	broker := axis.NewBroker()
	e, _ := axis.NewEditorFromSession(broker, nil, session)
	e.SetState(timeaxis.ViewState{Tracks: []timeaxis.TrackState{
		{Route: "Guitar", ShowAutomation: []timeaxis.Param{pan, timeaxis.PluginParam("amp", 3)}},
	}})
	amp := &timeaxis.Processor{ID: "amp", Name: "Amp"}
	published := amp.Copy()
	published.Params = []timeaxis.Param{amp.Param(3)}
	msgs := []axis.MsgToEditor{
		{Route: "Guitar", Data: axis.ProcessorAddedMsg{Processor: amp}},
		{Route: "Guitar", Data: axis.ProcessorParamsMsg{Processor: &published}},
		{Route: "Vocals", Data: axis.ProcessorRemovedMsg{ID: reverb.ID}},
		{Route: "Drums", Data: axis.RouteAddedMsg{Route: timeaxis.NewRoute("Drums")}},
		{Route: "Bass", Data: axis.RouteRemovedMsg{}},
		{Route: "Nowhere", Data: axis.ProcessorRemovedMsg{ID: eq.ID}},
	}
	for _, m := range msgs {
		if !axis.TrySend(broker.ToEditor, m) {
			t.Fatal("broker should not be full")
		}
	}
	if n := e.Drain(); n != len(msgs) {
		t.Fatalf("drained %d messages, want %d", n, len(msgs))
	}
	guitar := e.View("Guitar")
	assertVisible(t, guitar.Registry(), pan, amp.Param(3))
	if guitar.Registry().View(amp.Param(3)) == nil {
		t.Fatal("resolved lane should be realized")
	}
	vocals := e.View("Vocals")
	if got := vocals.Route().Processors; len(got) != 1 || got[0].ID != eq.ID {
		t.Fatalf("vocals should only have the EQ left, got %v", got)
	}
	var names []string
	for _, v := range e.Views() {
		names = append(names, v.Name())
	}
	if !slices.Equal(names, []string{"Vocals", "Guitar", "Drums"}) {
		t.Fatalf("tracks = %v", names)
	}
}

func TestEditorRun(t *testing.T) {
	broker := axis.NewBroker()
	e := axis.NewEditor(broker, nil)
	go e.Run()
	axis.TrySend(broker.ToEditor, axis.MsgToEditor{Data: axis.RouteAddedMsg{Route: timeaxis.NewRoute("Keys")}})
	axis.TrySend(broker.CloseEditor, struct{}{})
	if _, ok := axis.TimeoutReceive(broker.FinishedEditor, 3*time.Second); ok {
		t.Fatal("FinishedEditor should be closed, not sent to")
	}
	select {
	case <-broker.FinishedEditor:
	default:
		t.Fatal("editor loop did not finish in time")
	}
	if e.View("Keys") == nil {
		t.Fatal("messages sent before closing should be applied")
	}
}

func TestEditorRunWithoutBroker(t *testing.T) {
	e := axis.NewEditor(nil, nil)
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run without a broker should return at once")
	}
}

func TestRemoveRouteDestroysView(t *testing.T) {
	session, _, _ := newSession()
	e, _ := axis.NewEditorFromSession(nil, nil, session)
	vocals, guitar := e.View("Vocals"), e.View("Guitar")
	guitar.AddUnderlay(vocals)
	if !e.RemoveRoute("Vocals") {
		t.Fatal("vocals should be removed")
	}
	if !vocals.Destroyed() || e.View("Vocals") != nil {
		t.Fatal("view should be destroyed and forgotten")
	}
	assertViews(t, "guitar sources", guitar.Sources())
	if e.RemoveRoute("Vocals") {
		t.Fatal("removing twice should fail")
	}
	if _, err := e.AddRoute(timeaxis.NewRoute("Guitar")); err == nil {
		t.Fatal("duplicate track names should be rejected")
	}
}

func TestLaneBoolAndChoices(t *testing.T) {
	session, reverb, eq := newSession()
	e, _ := axis.NewEditorFromSession(nil, nil, session)
	vocals := e.View("Vocals")
	choices := vocals.Choices()
	var labels []string
	for _, c := range choices {
		labels = append(labels, c.Label)
	}
	if !slices.Equal(labels, []string{"Gain", "Pan", "Mute", "Reverb", "EQ"}) {
		t.Fatalf("labels = %v", labels)
	}
	reverbGroup := choices[3]
	if len(reverbGroup.Children) != 2 || reverbGroup.Children[0].Label != "Wet" || reverbGroup.Children[1].Label != "Dry" {
		t.Fatalf("reverb children = %+v", reverbGroup.Children)
	}
	reverbGroup.Children[0].Visible.Toggle()
	if !vocals.Registry().Visible(reverb.Param(0)) {
		t.Fatal("toggling the menu entry should show the lane")
	}
	vocals.ProcessorRemoved(reverb.ID)
	stale := vocals.Lane(reverb.Param(0))
	if stale.Enabled() {
		t.Fatal("lanes of removed processors should be disabled")
	}
	stale.Set(true)
	if stale.Value() {
		t.Fatal("setting a disabled lane should be a no-op")
	}
	vocals.ToggleAutomation(reverb.Param(0))
	vocals.ToggleAutomation(timeaxis.PluginParam("ghost", 0))
	labels = labels[:0]
	for _, c := range vocals.Choices() {
		labels = append(labels, c.Label)
	}
	if !slices.Equal(labels, []string{"Gain", "Pan", "Mute", "EQ"}) {
		t.Fatalf("removed processors should not be offered, got %v", labels)
	}
	if eqChildren := vocals.Choices()[3].Children; eqChildren[0].Label != "Low Gain" || eqChildren[0].Param != eq.Param(0) {
		t.Fatalf("eq children = %+v", eqChildren)
	}
}

func TestLearn(t *testing.T) {
	v := axis.NewTrackView(timeaxis.NewRoute("Synth"), nil)
	if !v.Learn(midi.ControlChange(1, 74, 100)) {
		t.Fatal("control change should be learned")
	}
	cc := timeaxis.MidiCCParam(1, 74)
	if !v.Registry().Visible(cc) {
		t.Fatal("learned controller lane should be shown")
	}
	if v.Learn(midi.NoteOn(0, 60, 100)) {
		t.Fatal("notes are not automatable")
	}
	if got := v.Choices()[3].Label; got != "Controller 74 (Channel 2)" {
		t.Fatalf("label = %q", got)
	}
}

func TestReport(t *testing.T) {
	session, reverb, _ := newSession()
	e, _ := axis.NewEditorFromSession(nil, nil, session)
	vocals := e.View("Vocals")
	vocals.Lane(gain).Set(true)
	vocals.Lane(reverb.Param(0)).Set(true)
	e.View("Bass").AddUnderlay(vocals)
	var buf bytes.Buffer
	if err := e.Report(&buf, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"VOCALS (height 68)",
		"lanes:      gain, plugin:reverb/0",
		"processor:  Reverb [2 params, showing wet]",
		"processor:  EQ [1 params]",
		"mirrored by: Bass",
		"underlays:  Vocals",
		"GUITAR (height 68)\n  lanes:      -",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report does not contain %q:\n%s", want, out)
		}
	}
	buf.Reset()
	if err := e.Report(&buf, `{{ range .Tracks }}{{ .Name | lower }};{{ end }}`); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "vocals;guitar;bass;" {
		t.Fatalf("custom report = %q", buf.String())
	}
	if err := e.Report(&buf, "{{ .Nope "); err == nil {
		t.Fatal("expected a template parse error")
	}
}
