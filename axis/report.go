package axis

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
)

// DefaultReportTemplate lists every track with its shown lanes, processors
// and underlays.
const DefaultReportTemplate = `{{- range .Tracks -}}
{{ .Name | upper }} (height {{ .Height }})
  lanes:      {{ .Visible | join ", " | default "-" }}
{{- if .Pending }}
  pending:    {{ .Pending | join ", " }}
{{- end }}
{{- range .Processors }}
  processor:  {{ .Name }} [{{ .Params | len }} params{{ if .Visible }}, showing {{ .Visible | join ", " }}{{ end }}]
{{- end }}
{{- if .Sources }}
  underlays:  {{ .Sources | join ", " }}
{{- end }}
{{- if .Mirrors }}
  mirrored by: {{ .Mirrors | join ", " }}
{{- end }}
{{ end -}}
`

type (
	// ReportData is what report templates are executed with.
	ReportData struct {
		Tracks []TrackReport
	}

	TrackReport struct {
		Name       string
		Height     int
		Visible    []string
		Pending    []string
		Processors []ProcessorReport
		Sources    []string
		Mirrors    []string
	}

	ProcessorReport struct {
		ID      string
		Name    string
		Params  []string
		Visible []string
	}
)

// ReportData collects the data of all track views for a report.
func (e *Editor) ReportData() ReportData {
	var d ReportData
	for _, v := range e.views {
		t := TrackReport{Name: v.name, Height: v.height}
		for _, p := range v.registry.VisibleSet() {
			t.Visible = append(t.Visible, p.String())
		}
		for _, p := range v.registry.Pending() {
			t.Pending = append(t.Pending, p.String())
		}
		for _, a := range v.registry.Processors() {
			proc := a.Processor()
			pr := ProcessorReport{ID: string(proc.ID), Name: processorLabel(proc)}
			for _, n := range a.Nodes() {
				label := pluginParamLabel(proc, n.Param())
				pr.Params = append(pr.Params, label)
				if n.Visible() {
					pr.Visible = append(pr.Visible, label)
				}
			}
			t.Processors = append(t.Processors, pr)
		}
		for _, s := range v.sources {
			t.Sources = append(t.Sources, s.name)
		}
		for _, m := range v.mirrors {
			t.Mirrors = append(t.Mirrors, m.name)
		}
		d.Tracks = append(d.Tracks, t)
	}
	return d
}

// Report writes a text report of the editor, executing tmpl with ReportData.
// The template can use the sprig function library. An empty tmpl uses
// DefaultReportTemplate.
func (e *Editor) Report(w io.Writer, tmpl string) error {
	if tmpl == "" {
		tmpl = DefaultReportTemplate
	}
	t, err := template.New("report").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("could not parse report template: %w", err)
	}
	if err := t.Execute(w, e.ReportData()); err != nil {
		return fmt.Errorf("could not execute report template: %w", err)
	}
	return nil
}
