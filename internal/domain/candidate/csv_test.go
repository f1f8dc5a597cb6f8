package candidate

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

func TestEncodeCSV_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, MustBuild(10)))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, "Ligand-001", records[1][0])
	assert.Equal(t, "C1=CC=C(C=C1)C(=O)O", records[1][1])
	assert.Equal(t, "Ligand-010", records[10][0])
}

func TestEncodeCSV_EmptySetWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, CandidateSet{}))
	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", buf.String())
}

func TestCSV_RoundTrip(t *testing.T) {
	orig := MustBuild(10)

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, orig))

	back, err := DecodeCSV(&buf)
	require.NoError(t, err)
	assert.True(t, orig.Equal(back))
}

func TestCSV_QuotesStructureCodeWithDelimiter(t *testing.T) {
	c := validCandidate("Ligand-001")
	c.StructureCode = `C1,CC"O`
	set, err := NewCandidateSet([]Candidate{c})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, set))
	assert.Contains(t, buf.String(), `"C1,CC""O"`)

	back, err := DecodeCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, `C1,CC"O`, back.At(0).StructureCode)
}

func TestDecodeCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"wrong header":   "id,smiles\nLigand-001,C\n",
		"bad float":      strings.Join(CSVHeader, ",") + "\nLigand-001,C,heavy,-1,1,0.5\n",
		"duplicate ids":  strings.Join(CSVHeader, ",") + "\nLigand-001,C,1,-1,1,0.5\nLigand-001,C,1,-1,1,0.5\n",
		"invalid values": strings.Join(CSVHeader, ",") + "\nLigand-001,C,1,-1,1,1.5\n",
		"nan scores":     strings.Join(CSVHeader, ",") + "\nLigand-001,C,NaN,-1,NaN,NaN\n",
		"nan tier score": strings.Join(CSVHeader, ",") + "\nLigand-001,C,300,-7,5,NaN\n",
		"inf affinity":   strings.Join(CSVHeader, ",") + "\nLigand-001,C,300,-Inf,5,0.5\n",
		"inf weight":     strings.Join(CSVHeader, ",") + "\nLigand-001,C,+Inf,-7,5,0.5\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCSV(strings.NewReader(input))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}
