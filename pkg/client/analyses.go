package client

import (
	"bytes"
	"context"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

type (
	RunResult        = appAnalysis.RunResult
	Overview         = appAnalysis.Overview
	DockingView      = appAnalysis.DockingView
	DruggabilityView = appAnalysis.DruggabilityView
	StructureView    = appAnalysis.StructureView
	ExportFormat     = appAnalysis.ExportFormat
	Options          = domainAnalysis.Options
)

// File is an upload sent with a submission.
type File struct {
	Name string
	Data []byte
}

// SubmitRequest is the analysis form.  Empty option fields take the
// server's defaults.
type SubmitRequest struct {
	ProjectName string
	Options     Options
	Target      *File
	Seed        *File
}

// Download is a fetched export.  DownloadURL is set when the server kept a
// copy in object storage; the link expires.
type Download struct {
	FileName    string
	ContentType string
	Data        []byte
	DownloadURL string
}

// AnalysesClient submits runs and reads their views.
type AnalysesClient struct {
	client *Client
}

// Submit posts the form as multipart/form-data.
func (c *AnalysesClient) Submit(ctx context.Context, req *SubmitRequest) (*RunResult, error) {
	if req == nil || req.Target == nil {
		return nil, errors.New(errors.ErrCodeTargetMissing, "target structure file is required")
	}
	body, contentType, err := encodeForm(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.do(ctx, request{
		method:      http.MethodPost,
		path:        "/analyses",
		contentType: contentType,
		body:        body,
	})
	if err != nil {
		return nil, err
	}
	var out RunResult
	if err := decode(resp.body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func encodeForm(req *SubmitRequest) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	o := req.Options
	fields := [][2]string{
		{"project_name", req.ProjectName},
		{"binding_site_method", string(o.BindingSiteMethod)},
		{"conformation", string(o.Conformation)},
		{"desired_effect", string(o.DesiredEffect)},
		{"population", string(o.Population)},
		{"route", string(o.Route)},
		{"design_method", string(o.DesignMethod)},
		{"count_range", string(o.CountRange)},
		{"blind_docking", strconv.FormatBool(o.BlindDocking)},
	}
	if gb := o.GridBox; gb != nil {
		for _, f := range []struct {
			name string
			v    float64
		}{
			{"grid_center_x", gb.CenterX}, {"grid_center_y", gb.CenterY}, {"grid_center_z", gb.CenterZ},
			{"grid_size_x", gb.SizeX}, {"grid_size_y", gb.SizeY}, {"grid_size_z", gb.SizeZ},
		} {
			fields = append(fields, [2]string{f.name, strconv.FormatFloat(f.v, 'f', -1, 64)})
		}
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	for field, file := range map[string]*File{"target": req.Target, "seed": req.Seed} {
		if file == nil {
			continue
		}
		part, err := w.CreateFormFile(field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func (c *AnalysesClient) Get(ctx context.Context, runID string) (*RunResult, error) {
	var out RunResult
	if err := c.client.getJSON(ctx, runPath(runID, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Docking returns the docking view of one ligand, e.g. "Ligand-003".
func (c *AnalysesClient) Docking(ctx context.Context, runID, ligandID string) (*DockingView, error) {
	var out DockingView
	if err := c.client.getJSON(ctx, runPath(runID, "/docking"), ligandQuery(ligandID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AnalysesClient) Druggability(ctx context.Context, runID, ligandID string) (*DruggabilityView, error) {
	var out DruggabilityView
	if err := c.client.getJSON(ctx, runPath(runID, "/druggability"), ligandQuery(ligandID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Structure returns the placeholder point cloud.  A nil seed uses the
// server's default.
func (c *AnalysesClient) Structure(ctx context.Context, runID, ligandID string, seed *int64) (*StructureView, error) {
	q := ligandQuery(ligandID)
	if seed != nil {
		q.Set("seed", strconv.FormatInt(*seed, 10))
	}
	var out StructureView
	if err := c.client.getJSON(ctx, runPath(runID, "/structure"), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var downloadPaths = map[ExportFormat]string{
	appAnalysis.FormatCSV:    "/export.csv",
	appAnalysis.FormatXLSX:   "/export.xlsx",
	appAnalysis.FormatReport: "/report.txt",
	appAnalysis.FormatPDB:    "/complex.pdb",
}

// Download fetches one export of the run.
func (c *AnalysesClient) Download(ctx context.Context, runID string, format ExportFormat) (*Download, error) {
	p, ok := downloadPaths[format]
	if !ok {
		return nil, errors.InvalidArgument("unsupported export format").WithDetail("format=" + string(format))
	}
	resp, err := c.client.do(ctx, request{method: http.MethodGet, path: runPath(runID, p), accept: "*/*"})
	if err != nil {
		return nil, err
	}
	d := &Download{
		FileName:    format.FileName(),
		ContentType: resp.header.Get("Content-Type"),
		Data:        resp.body,
		DownloadURL: resp.header.Get("X-Download-Url"),
	}
	if _, params, err := mime.ParseMediaType(resp.header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		d.FileName = params["filename"]
	}
	return d, nil
}

// Demo returns the sample overview shown before any submission.
func (c *AnalysesClient) Demo(ctx context.Context) (*Overview, error) {
	var out Overview
	if err := c.client.getJSON(ctx, "/demo", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Choices lists the accepted values of every option selector.
func (c *AnalysesClient) Choices(ctx context.Context) (map[string][]string, error) {
	var out map[string][]string
	if err := c.client.getJSON(ctx, "/options", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func runPath(runID, suffix string) string {
	return "/analyses/" + url.PathEscape(runID) + suffix
}

func ligandQuery(ligandID string) url.Values {
	q := url.Values{}
	if ligandID != "" {
		q.Set("ligand", ligandID)
	}
	return q
}

//Personal.AI order the ending
