package analysis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DeNovo-Designer/internal/domain/candidate"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{
		"csv":     FormatCSV,
		"XLSX":    FormatXLSX,
		" report": FormatReport,
		"pdb":     FormatPDB,
	} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseExportFormat("pdf")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRender_CSV(t *testing.T) {
	set := candidate.MustBuild(3)
	art, err := Render(FormatCSV, "p", set)
	require.NoError(t, err)

	assert.Equal(t, "results.csv", art.FileName)
	assert.Equal(t, ContentTypeCSV, art.ContentType)
	first := strings.SplitN(string(art.Data), "\n", 2)[0]
	assert.Equal(t, strings.Join(candidate.CSVHeader, ","), first)

	back, err := candidate.DecodeCSV(bytes.NewReader(art.Data))
	require.NoError(t, err)
	assert.True(t, set.Equal(back))
}

func TestRender_XLSX(t *testing.T) {
	art, err := Render(FormatXLSX, "p", candidate.MustBuild(10))
	require.NoError(t, err)
	assert.Equal(t, "results.xlsx", art.FileName)
	assert.True(t, bytes.HasPrefix(art.Data, []byte("PK")))
}

func TestRender_ReportAndPDB(t *testing.T) {
	art, err := Render(FormatReport, "Proj", candidate.MustBuild(2))
	require.NoError(t, err)
	assert.Equal(t, "report.txt", art.FileName)
	assert.Contains(t, string(art.Data), "Project: Proj")

	art, err = Render(FormatPDB, "Proj", candidate.MustBuild(2))
	require.NoError(t, err)
	assert.Equal(t, "complex.pdb", art.FileName)
	assert.Equal(t, "PDB sample content", string(art.Data))
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := Render(ExportFormat("pdf"), "p", candidate.MustBuild(1))
	assert.True(t, errors.IsInvalidArgument(err))
}

//Personal.AI order the ending
