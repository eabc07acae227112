package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/timeaxis/timeaxis"
	"github.com/timeaxis/timeaxis/axis"
	"github.com/timeaxis/timeaxis/version"
)

// trackArgs collects repeated "track=value" flags.
type trackArgs []string

func (a *trackArgs) String() string { return strings.Join(*a, " ") }
func (a *trackArgs) Set(s string) error {
	if !strings.Contains(s, "=") {
		return fmt.Errorf("expected track=value, got %q", s)
	}
	*a = append(*a, s)
	return nil
}

func (a trackArgs) each(f func(track, value string)) {
	for _, s := range a {
		track, value, _ := strings.Cut(s, "=")
		f(strings.TrimSpace(track), strings.TrimSpace(value))
	}
}

func main() {
	var show, hide, toggle, underlay, removeUnderlay trackArgs
	statePath := flag.String("state", "", "View state file to restore. Defaults to the session's state file in the user config directory, if it exists.")
	tmplPath := flag.String("t", "", "Render the report with this text/template file instead of the default one. Sprig functions are available.")
	write := flag.Bool("w", false, "Write the resulting view state back to the state file.")
	outPath := flag.String("o", "", "Write the resulting view state to this file instead. A .json extension writes json, anything else yaml.")
	quiet := flag.Bool("q", false, "Do not print the report.")
	showAll := flag.Bool("show-all", false, "Show all automation lanes of all tracks before applying other changes.")
	hideAll := flag.Bool("hide-all", false, "Hide all automation lanes of all tracks before applying other changes.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Var(&show, "show", "Show a lane, e.g. -show 'Audio 1=gain' or -show 'Audio 1=plugin:<id>/2'. Can be repeated.")
	flag.Var(&hide, "hide", "Hide a lane, as track=param. Can be repeated.")
	flag.Var(&toggle, "toggle", "Toggle a lane, as track=param. Can be repeated.")
	flag.Var(&underlay, "underlay", "Draw a track under another, as track=source. Can be repeated.")
	flag.Var(&removeUnderlay, "remove-underlay", "Stop drawing a track under another, as track=source. Can be repeated.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	sessionPath := flag.Arg(0)
	f, err := os.Open(sessionPath)
	if err != nil {
		log.Fatal(err)
	}
	session, err := timeaxis.ReadSession(f)
	f.Close()
	if err != nil {
		log.Fatalf("%s: %v", sessionPath, err)
	}
	editor, err := axis.NewEditorFromSession(nil, nil, session)
	if err != nil {
		log.Fatalf("%s: %v", sessionPath, err)
	}
	if *statePath == "" {
		*statePath = defaultStatePath(sessionPath)
	}
	if *statePath != "" {
		if f, err := os.Open(*statePath); err == nil {
			err = editor.ReadState(f)
			f.Close()
			if err != nil {
				log.Fatalf("%s: %v", *statePath, err)
			}
		} else if !os.IsNotExist(err) || isFlagPassed("state") {
			log.Fatal(err)
		}
	}
	for _, v := range editor.Views() {
		switch {
		case *hideAll:
			v.HideAll().Do()
		case *showAll:
			v.ShowAll().Do()
		}
	}
	applyLanes(editor, show, func(v *axis.TrackView, p timeaxis.Param) { setLane(v, p, true) })
	applyLanes(editor, hide, func(v *axis.TrackView, p timeaxis.Param) { setLane(v, p, false) })
	applyLanes(editor, toggle, (*axis.TrackView).ToggleAutomation)
	applyUnderlays(editor, underlay, func(v, src *axis.TrackView) { v.Underlay(src).Set(true) })
	applyUnderlays(editor, removeUnderlay, (*axis.TrackView).RemoveUnderlay)
	if !*quiet {
		tmpl := ""
		if *tmplPath != "" {
			b, err := os.ReadFile(*tmplPath)
			if err != nil {
				log.Fatal(err)
			}
			tmpl = string(b)
		}
		if err := editor.Report(os.Stdout, tmpl); err != nil {
			log.Fatal(err)
		}
	}
	out := *outPath
	if out == "" && *write {
		out = *statePath
	}
	if out != "" {
		var buf bytes.Buffer
		if err := editor.WriteState(&buf, filepath.Ext(out)); err != nil {
			log.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Dir(out), os.ModePerm); err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
			log.Fatal(err)
		}
	}
}

func applyLanes(editor *axis.Editor, args trackArgs, f func(*axis.TrackView, timeaxis.Param)) {
	args.each(func(track, value string) {
		v := editor.View(track)
		if v == nil {
			log.Printf("no track %q", track)
			return
		}
		p, err := timeaxis.ParseParam(value)
		if err != nil {
			log.Printf("track %q: %v", track, err)
			return
		}
		f(v, p)
	})
}

// setLane sets a lane through its check box, logging parameters the track
// cannot show, as the check box is disabled for them.
func setLane(v *axis.TrackView, p timeaxis.Param, visible bool) {
	if !v.Registry().Known(p) {
		log.Printf("track %q: %v is not a parameter of the track or of a processor on it", v.Name(), p)
		return
	}
	v.Lane(p).Set(visible)
}

func applyUnderlays(editor *axis.Editor, args trackArgs, f func(v, src *axis.TrackView)) {
	args.each(func(track, source string) {
		v, src := editor.View(track), editor.View(source)
		if v == nil || src == nil {
			log.Printf("no track %q or %q", track, source)
			return
		}
		f(v, src)
	})
}

// defaultStatePath returns <config dir>/Timeaxis/<session name>.state.yml,
// or "" if there is no user config directory.
func defaultStatePath(sessionPath string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	name := strings.TrimSuffix(filepath.Base(sessionPath), filepath.Ext(sessionPath))
	return filepath.Join(configDir, "Timeaxis", name+".state.yml")
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Timeaxis inspector. Restores the track view state of a session, applies changes to it and prints a report.\nUsage: %s [flags] session.yml\n", os.Args[0])
	flag.PrintDefaults()
}
