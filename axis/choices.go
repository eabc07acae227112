package axis

import (
	"fmt"

	"github.com/timeaxis/timeaxis"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Choice is one entry of the automation menu of a track: either a lane that
// can be shown and hidden, or a group of lanes belonging to one processor.
// The UI turns choices into whatever menu widgets it uses.
type Choice struct {
	Label    string
	Param    timeaxis.Param // zero for groups
	Visible  Bool           // zero for groups
	Children []Choice
}

// Choices returns the automation menu of the track: the route controls first,
// then one group per processor on the route. Removed processors are never
// listed.
func (v *TrackView) Choices() []Choice {
	var ret []Choice
	for _, p := range v.registry.RouteParams() {
		ret = append(ret, v.choice(p, routeParamLabel(p)))
	}
	for _, a := range v.registry.Processors() {
		proc := a.Processor()
		group := Choice{Label: processorLabel(proc)}
		for _, n := range a.Nodes() {
			group.Children = append(group.Children, v.choice(n.Param(), pluginParamLabel(proc, n.Param())))
		}
		ret = append(ret, group)
	}
	return ret
}

func (v *TrackView) choice(p timeaxis.Param, label string) Choice {
	return Choice{Label: title(label), Param: p, Visible: v.Lane(p)}
}

func routeParamLabel(p timeaxis.Param) string {
	switch p.Kind {
	case timeaxis.PanWidthAutomation:
		return "pan width"
	case timeaxis.MidiCCAutomation:
		return fmt.Sprintf("controller %d (channel %d)", p.ID, p.Channel+1)
	case timeaxis.MidiPgmChangeAutomation:
		return fmt.Sprintf("program change (channel %d)", p.Channel+1)
	case timeaxis.MidiPitchBenderAutomation:
		return fmt.Sprintf("pitch bender (channel %d)", p.Channel+1)
	case timeaxis.MidiChannelPressureAutomation:
		return fmt.Sprintf("pressure (channel %d)", p.Channel+1)
	}
	return p.Kind.String()
}

func processorLabel(proc *timeaxis.Processor) string {
	switch {
	case proc.Name != "":
		return proc.Name
	case proc.Type != "":
		return title(proc.Type)
	}
	return string(proc.ID)
}

func pluginParamLabel(proc *timeaxis.Processor, p timeaxis.Param) string {
	if l, ok := proc.Labels[p.ID]; ok && l != "" {
		return l
	}
	return fmt.Sprintf("parameter %d", p.ID)
}

// title capitalizes every word of a label, leaving acronyms such as "EQ"
// alone. A Caser keeps state between calls, so each call gets its own.
func title(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}
