package candidate

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// CSVHeader is the column order of the candidate CSV contract.
var CSVHeader = []string{
	"id",
	"structure_code",
	"molecular_weight",
	"binding_affinity",
	"docking_score",
	"druggability_score",
}

// EncodeCSV writes set as a header row followed by one row per candidate.
// Structure codes are emitted verbatim with standard CSV quoting.
func EncodeCSV(w io.Writer, set CandidateSet) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if err := enc.EncodeHeader(Candidate{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to write csv header")
	}
	for _, c := range set.items {
		if err := enc.Encode(c); err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to write csv row").
				WithDetail("id=" + c.ID)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to flush csv")
	}
	return nil
}

// DecodeCSV parses the output of EncodeCSV back into a validated set.
func DecodeCSV(r io.Reader) (CandidateSet, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if err == io.EOF {
			return CandidateSet{}, errors.New(errors.ErrCodeMalformedCandidateCSV, "csv input is empty")
		}
		return CandidateSet{}, errors.Wrap(err, errors.ErrCodeMalformedCandidateCSV, "failed to read csv header")
	}
	if got := dec.Header(); strings.Join(got, ",") != strings.Join(CSVHeader, ",") {
		return CandidateSet{}, errors.New(errors.ErrCodeMalformedCandidateCSV, "unexpected csv header").
			WithDetail(strings.Join(got, ","))
	}

	var cands []Candidate
	for {
		var c Candidate
		if err := dec.Decode(&c); err == io.EOF {
			break
		} else if err != nil {
			return CandidateSet{}, errors.Wrap(err, errors.ErrCodeMalformedCandidateCSV, "failed to decode csv row")
		}
		cands = append(cands, c)
	}
	return NewCandidateSet(cands)
}

//Personal.AI order the ending
