package timeaxis

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type (
	// Param identifies one automatable control of a track: the track's own
	// gain or pan, a MIDI controller, or a parameter of a processor inserted
	// on the track. Params are comparable and can be used as map keys. Two
	// Params are the same automatable control if and only if they are equal.
	//
	// Processor is empty for route level parameters and names the owning
	// processor for PluginAutomation parameters, so that two plugins exposing
	// a parameter with the same port number never collide within a track.
	// Channel is used by the MIDI kinds, ID is the plugin port number or the
	// MIDI controller number.
	Param struct {
		Kind      ParamKind
		Processor ProcessorID
		Channel   uint8
		ID        uint32
	}

	// ParamKind tells what kind of control a Param refers to.
	ParamKind int
)

const (
	NullAutomation ParamKind = iota
	GainAutomation
	PanAutomation
	PanWidthAutomation
	MuteAutomation
	SoloAutomation
	FaderAutomation
	PluginAutomation
	MidiCCAutomation
	MidiPgmChangeAutomation
	MidiPitchBenderAutomation
	MidiChannelPressureAutomation
)

var paramKindNames = [...]string{
	NullAutomation:                "null",
	GainAutomation:                "gain",
	PanAutomation:                 "pan",
	PanWidthAutomation:            "panwidth",
	MuteAutomation:                "mute",
	SoloAutomation:                "solo",
	FaderAutomation:               "fader",
	PluginAutomation:              "plugin",
	MidiCCAutomation:              "midicc",
	MidiPgmChangeAutomation:       "midipgm",
	MidiPitchBenderAutomation:     "midibend",
	MidiChannelPressureAutomation: "midipressure",
}

var errInvalidParam = errors.New("invalid automation parameter")

func (k ParamKind) String() string {
	if k < 0 || int(k) >= len(paramKindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return paramKindNames[k]
}

func parseParamKind(s string) (ParamKind, bool) {
	for i, n := range paramKindNames {
		if i != int(NullAutomation) && n == s {
			return ParamKind(i), true
		}
	}
	return NullAutomation, false
}

// RouteParam returns the identity of a route level control, e.g. gain or pan.
func RouteParam(kind ParamKind) Param { return Param{Kind: kind} }

// PluginParam returns the identity of the parameter on port id of processor p.
func PluginParam(p ProcessorID, id uint32) Param {
	return Param{Kind: PluginAutomation, Processor: p, ID: id}
}

// MidiCCParam returns the identity of a MIDI continuous controller. Channels
// are zero based.
func MidiCCParam(channel, controller uint8) Param {
	return Param{Kind: MidiCCAutomation, Channel: channel, ID: uint32(controller)}
}

func MidiPgmChangeParam(channel uint8) Param {
	return Param{Kind: MidiPgmChangeAutomation, Channel: channel}
}

func MidiPitchBenderParam(channel uint8) Param {
	return Param{Kind: MidiPitchBenderAutomation, Channel: channel}
}

func MidiChannelPressureParam(channel uint8) Param {
	return Param{Kind: MidiChannelPressureAutomation, Channel: channel}
}

// Valid reports whether p refers to an automatable control at all. The zero
// Param is not valid, and neither is a plugin parameter without a processor.
func (p Param) Valid() bool {
	switch {
	case p.Kind <= NullAutomation || int(p.Kind) >= len(paramKindNames):
		return false
	case p.Kind == PluginAutomation:
		return p.Processor != ""
	default:
		return p.Processor == ""
	}
}

// IsProcessorParam reports whether p belongs to a processor rather than to the
// route itself.
func (p Param) IsProcessorParam() bool { return p.Kind == PluginAutomation }

// Compare orders Params by kind, processor, channel and id. It returns -1, 0
// or +1 like cmp.Compare.
func Compare(a, b Param) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Processor, b.Processor); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Channel, b.Channel); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// String returns the text form of p, which is also what gets persisted:
// "gain", "plugin:<processor>/<port>", "midicc:<channel>/<controller>",
// "midibend:<channel>" and so on.
func (p Param) String() string {
	switch p.Kind {
	case PluginAutomation:
		return fmt.Sprintf("%s:%s/%d", p.Kind, p.Processor, p.ID)
	case MidiCCAutomation:
		return fmt.Sprintf("%s:%d/%d", p.Kind, p.Channel, p.ID)
	case MidiPgmChangeAutomation, MidiPitchBenderAutomation, MidiChannelPressureAutomation:
		return fmt.Sprintf("%s:%d", p.Kind, p.Channel)
	}
	return p.Kind.String()
}

// ParseParam parses the text form produced by Param.String.
func ParseParam(s string) (Param, error) {
	s = strings.TrimSpace(s)
	name, rest, hasArgs := strings.Cut(s, ":")
	kind, ok := parseParamKind(name)
	if !ok {
		return Param{}, fmt.Errorf("%w: unknown kind in %q", errInvalidParam, s)
	}
	p := Param{Kind: kind}
	switch kind {
	case PluginAutomation:
		i := strings.LastIndexByte(rest, '/')
		if !hasArgs || i <= 0 {
			return Param{}, fmt.Errorf("%w: expected plugin:<processor>/<port>, got %q", errInvalidParam, s)
		}
		id, err := strconv.ParseUint(rest[i+1:], 10, 32)
		if err != nil {
			return Param{}, fmt.Errorf("%w: bad port in %q: %v", errInvalidParam, s, err)
		}
		p.Processor, p.ID = ProcessorID(rest[:i]), uint32(id)
	case MidiCCAutomation:
		ch, cc, found := strings.Cut(rest, "/")
		if !hasArgs || !found {
			return Param{}, fmt.Errorf("%w: expected midicc:<channel>/<controller>, got %q", errInvalidParam, s)
		}
		c, err := parseChannel(ch)
		if err != nil {
			return Param{}, fmt.Errorf("%w: %q: %v", errInvalidParam, s, err)
		}
		id, err := strconv.ParseUint(cc, 10, 7)
		if err != nil {
			return Param{}, fmt.Errorf("%w: bad controller in %q: %v", errInvalidParam, s, err)
		}
		p.Channel, p.ID = c, uint32(id)
	case MidiPgmChangeAutomation, MidiPitchBenderAutomation, MidiChannelPressureAutomation:
		if !hasArgs {
			return Param{}, fmt.Errorf("%w: expected %s:<channel>, got %q", errInvalidParam, kind, s)
		}
		c, err := parseChannel(rest)
		if err != nil {
			return Param{}, fmt.Errorf("%w: %q: %v", errInvalidParam, s, err)
		}
		p.Channel = c
	default:
		if hasArgs {
			return Param{}, fmt.Errorf("%w: %s takes no arguments, got %q", errInvalidParam, kind, s)
		}
	}
	return p, nil
}

func parseChannel(s string) (uint8, error) {
	c, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	if c > 15 {
		return 0, fmt.Errorf("channel %d out of range", c)
	}
	return uint8(c), nil
}

// MarshalText makes Params serialize as plain scalars, both in yaml and json.
func (p Param) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %v", errInvalidParam, p)
	}
	return []byte(p.String()), nil
}

func (p *Param) UnmarshalText(text []byte) error {
	q, err := ParseParam(string(text))
	if err != nil {
		return err
	}
	*p = q
	return nil
}
