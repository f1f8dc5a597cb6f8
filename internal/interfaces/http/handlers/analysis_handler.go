package handlers

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	appAnalysis "github.com/turtacn/DeNovo-Designer/internal/application/analysis"
	domainAnalysis "github.com/turtacn/DeNovo-Designer/internal/domain/analysis"
	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// multipartMemory is how much of a multipart body is held in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// AnalysisHandler serves analysis runs and their views.
type AnalysisHandler struct {
	svc         appAnalysis.Service
	logger      logging.Logger
	maxBodySize int64
}

func NewAnalysisHandler(svc appAnalysis.Service, maxBodySize int64, logger logging.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, logger: logger, maxBodySize: maxBodySize}
}

// Submit handles POST /analyses.
func (h *AnalysisHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.Is(err, http.ErrNotMultipart) {
			writeAppError(w, h.logger, errors.New(errors.ErrCodeTargetMissing, "target structure file is required"))
			return
		}
		if stderrors.As(err, &tooLarge) {
			writeAppError(w, h.logger, errors.New(errors.ErrCodeValidation, "request body too large"))
			return
		}
		writeAppError(w, h.logger, errors.InvalidArgument("malformed multipart form").WithCause(err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	opts, err := optionsFromForm(r)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	target, err := readFormFile(r, "target")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if target == nil {
		writeAppError(w, h.logger, errors.New(errors.ErrCodeTargetMissing, "target structure file is required"))
		return
	}
	seed, err := readFormFile(r, "seed")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	res, err := h.svc.Submit(r.Context(), &appAnalysis.SubmitInput{
		ProjectName: r.FormValue("project_name"),
		Options:     opts,
		Target:      target,
		Seed:        seed,
	})
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	w.Header().Set("Location", "/api/v1/analyses/"+res.Run.ID)
	writeJSON(w, http.StatusCreated, res)
}

// Get handles GET /analyses/{runID}.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Get(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Docking handles GET /analyses/{runID}/docking?ligand=.
func (h *AnalysisHandler) Docking(w http.ResponseWriter, r *http.Request) {
	ligand, err := requireQuery(r, "ligand")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	v, err := h.svc.Docking(r.Context(), chi.URLParam(r, "runID"), ligand)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Druggability handles GET /analyses/{runID}/druggability?ligand=.
func (h *AnalysisHandler) Druggability(w http.ResponseWriter, r *http.Request) {
	ligand, err := requireQuery(r, "ligand")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	v, err := h.svc.Druggability(r.Context(), chi.URLParam(r, "runID"), ligand)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Structure handles GET /analyses/{runID}/structure?ligand=&seed=.
func (h *AnalysisHandler) Structure(w http.ResponseWriter, r *http.Request) {
	ligand, err := requireQuery(r, "ligand")
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	in := &appAnalysis.StructureInput{RunID: chi.URLParam(r, "runID"), LigandID: ligand}
	if s := r.URL.Query().Get("seed"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeAppError(w, h.logger, errors.InvalidArgument("seed must be an integer").WithDetail("seed="+s))
			return
		}
		in.Seed = &seed
	}
	v, err := h.svc.Structure(r.Context(), in)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// HeaderDownloadURL carries the signed link to the stored copy of an export.
const HeaderDownloadURL = "X-Download-Url"

// Download returns a handler serving one export format as an attachment.
func (h *AnalysisHandler) Download(format appAnalysis.ExportFormat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		art, err := h.svc.Export(r.Context(), chi.URLParam(r, "runID"), format)
		if err != nil {
			writeAppError(w, h.logger, err)
			return
		}
		w.Header().Set("Content-Type", art.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.FileName))
		w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
		if art.DownloadURL != "" {
			w.Header().Set(HeaderDownloadURL, art.DownloadURL)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(art.Data)
	}
}

// Demo handles GET /demo, the sample overview shown before any submission.
func (h *AnalysisHandler) Demo(w http.ResponseWriter, r *http.Request) {
	ov, err := h.svc.Demo(r.Context())
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// Options handles GET /options.
func (h *AnalysisHandler) Options(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domainAnalysis.Choices())
}

func optionsFromForm(r *http.Request) (domainAnalysis.Options, error) {
	opts := domainAnalysis.Options{
		BindingSiteMethod: domainAnalysis.BindingSiteMethod(r.FormValue("binding_site_method")),
		Conformation:      domainAnalysis.Conformation(r.FormValue("conformation")),
		DesiredEffect:     domainAnalysis.Effect(r.FormValue("desired_effect")),
		Population:        domainAnalysis.Population(r.FormValue("population")),
		Route:             domainAnalysis.Route(r.FormValue("route")),
		DesignMethod:      domainAnalysis.DesignMethod(r.FormValue("design_method")),
		CountRange:        domainAnalysis.CountRange(r.FormValue("count_range")),
	}
	if v := r.FormValue("blind_docking"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidAnalysisOption, "invalid analysis option").
				WithDetail("blind_docking=" + v)
		}
		opts.BlindDocking = b
	}

	gb := domainAnalysis.DefaultGridBox()
	fields := []struct {
		name string
		dst  *float64
	}{
		{"grid_center_x", &gb.CenterX}, {"grid_center_y", &gb.CenterY}, {"grid_center_z", &gb.CenterZ},
		{"grid_size_x", &gb.SizeX}, {"grid_size_y", &gb.SizeY}, {"grid_size_z", &gb.SizeZ},
	}
	seen := false
	for _, f := range fields {
		v := strings.TrimSpace(r.FormValue(f.name))
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidAnalysisOption, "invalid analysis option").
				WithDetail(f.name + "=" + v)
		}
		*f.dst = n
		seen = true
	}
	if seen {
		opts.GridBox = &gb
	}
	return opts, nil
}

// readFormFile returns nil when the field is absent.
func readFormFile(r *http.Request, field string) (*appAnalysis.FileUpload, error) {
	f, hdr, err := r.FormFile(field)
	if stderrors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.InvalidArgument("unreadable upload").WithDetail("field=" + field).WithCause(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.InvalidArgument("unreadable upload").WithDetail("field=" + field).WithCause(err)
	}
	return &appAnalysis.FileUpload{
		Name:        hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

//Personal.AI order the ending
