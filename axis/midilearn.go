package axis

import (
	"github.com/timeaxis/timeaxis"
	"gitlab.com/gomidi/midi/v2"
)

// ParamFromMIDI returns the automatable control a MIDI message would change:
// a controller, the program, the pitch bender or the channel pressure of a
// channel. Notes, sysex and realtime messages return false.
func ParamFromMIDI(msg midi.Message) (timeaxis.Param, bool) {
	var channel, a, b uint8
	var rel int16
	var abs uint16
	switch {
	case msg.GetControlChange(&channel, &a, &b):
		return timeaxis.MidiCCParam(channel, a), true
	case msg.GetProgramChange(&channel, &a):
		return timeaxis.MidiPgmChangeParam(channel), true
	case msg.GetPitchBend(&channel, &rel, &abs):
		return timeaxis.MidiPitchBenderParam(channel), true
	case msg.GetAfterTouch(&channel, &a):
		return timeaxis.MidiChannelPressureParam(channel), true
	}
	return timeaxis.Param{}, false
}
