package candidate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestEncodeXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeXLSX(&buf, MustBuild(10)))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	sheet, ok := f.Sheet[XLSXSheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 11)

	header := make([]string, 0, len(CSVHeader))
	for _, cell := range sheet.Rows[0].Cells {
		header = append(header, cell.String())
	}
	assert.Equal(t, CSVHeader, header)
	assert.Equal(t, "Ligand-003", sheet.Rows[3].Cells[0].String())
	assert.Equal(t, "C1=CC=C2C(=C1)C=CC=N2", sheet.Rows[3].Cells[1].String())

	affinity, err := sheet.Rows[3].Cells[3].Float()
	require.NoError(t, err)
	assert.Equal(t, -8.5, affinity)
}
