package analysis

import (
	"fmt"
	"io"
	"text/template"

	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// ReportTitle is the first line of every text report.
const ReportTitle = "Report: sample analysis results"

// Disclaimer closes every report.  The results are fixed example data.
const Disclaimer = "Note: these results are example data. Real analysis requires molecular docking and modelling software."

// ReportInput is everything RenderReport needs.
type ReportInput struct {
	ProjectName string
	Set         candidate.CandidateSet
}

type reportData struct {
	Title       string
	ProjectName string
	Overview    *Overview
	Disclaimer  string
}

var reportFuncs = template.FuncMap{
	"f1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"mw": func(v float64) string { return fmt.Sprintf("%.0f", v) },
}

const reportTemplate = `{{.Title}}
Project: {{.ProjectName}}

Candidates
ID          Molecular weight  Binding affinity  Docking score  Druggability  Tier
{{- range .Overview.Candidates}}
{{printf "%-11s" .ID}} {{printf "%16s" (mw .MolecularWeight)}}  {{printf "%16s" (f1 .BindingAffinity)}}  {{printf "%13s" (f1 .DockingScore)}}  {{printf "%12s" (f2 .DruggabilityScore)}}  {{.Tier}}
{{- end}}

Summary
Generated molecules:    {{.Overview.GeneratedCount}}
Successful docking:     {{.Overview.SuccessfulDocking}}
Mean binding affinity:  {{f2 .Overview.MeanBindingAffinity}} kcal/mol
Best druggability:      {{f2 .Overview.BestDruggability}}

{{.Disclaimer}}
`

var reportTmpl = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

// RenderReport writes the plain-text report for in.
func RenderReport(w io.Writer, in ReportInput) error {
	name := in.ProjectName
	if name == "" {
		name = domainAnalysis.DefaultProjectName
	}
	data := reportData{
		Title:       ReportTitle,
		ProjectName: name,
		Overview:    BuildOverview(in.Set),
		Disclaimer:  Disclaimer,
	}
	if err := reportTmpl.Execute(w, data); err != nil {
		return errors.Wrap(err, errors.ErrCodeExportFailed, "render report")
	}
	return nil
}

//Personal.AI order the ending
