package analysis

import (
	"bytes"
	"strings"

	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// ExportFormat selects a download.
type ExportFormat string

const (
	FormatCSV    ExportFormat = "csv"
	FormatXLSX   ExportFormat = "xlsx"
	FormatReport ExportFormat = "report"
	FormatPDB    ExportFormat = "pdb"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypePDB  = "chemical/x-pdb"
)

// placeholderPDB is served as the complex download.  It is not a valid PDB.
const placeholderPDB = "PDB sample content"

var exportFiles = map[ExportFormat]struct {
	name        string
	contentType string
}{
	FormatCSV:    {"results.csv", ContentTypeCSV},
	FormatXLSX:   {"results.xlsx", ContentTypeXLSX},
	FormatReport: {"report.txt", ContentTypeText},
	FormatPDB:    {"complex.pdb", ContentTypePDB},
}

// ParseExportFormat accepts the format names case-insensitively.
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := exportFiles[f]; !ok {
		return "", errors.InvalidArgument("unsupported export format").WithDetail("format=" + s)
	}
	return f, nil
}

// FileName is the download name for f.
func (f ExportFormat) FileName() string { return exportFiles[f].name }

// ContentType is the MIME type for f.
func (f ExportFormat) ContentType() string { return exportFiles[f].contentType }

// Artifact is a rendered download.
type Artifact struct {
	Format      ExportFormat `json:"format"`
	FileName    string       `json:"file_name"`
	ContentType string       `json:"content_type"`
	Data        []byte       `json:"-"`
	ObjectKey   string       `json:"object_key,omitempty"`
	// DownloadURL is a time-limited link to the stored copy.
	DownloadURL string `json:"download_url,omitempty"`
}

// Render produces the bytes of f for set.
func Render(f ExportFormat, projectName string, set candidate.CandidateSet) (*Artifact, error) {
	if _, ok := exportFiles[f]; !ok {
		return nil, errors.InvalidArgument("unsupported export format").WithDetail("format=" + string(f))
	}
	var buf bytes.Buffer
	var err error
	switch f {
	case FormatCSV:
		err = candidate.EncodeCSV(&buf, set)
	case FormatXLSX:
		err = candidate.EncodeXLSX(&buf, set)
	case FormatReport:
		err = RenderReport(&buf, ReportInput{ProjectName: projectName, Set: set})
	case FormatPDB:
		buf.WriteString(placeholderPDB)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExportFailed, "export failed").WithDetail("format=" + string(f))
	}
	return &Artifact{
		Format:      f,
		FileName:    f.FileName(),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

//Personal.AI order the ending
