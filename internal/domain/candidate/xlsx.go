package candidate

import (
	"io"

	"github.com/tealeg/xlsx/v2"

	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

// XLSXSheetName is the worksheet that holds the candidate table.
const XLSXSheetName = "Candidates"

// EncodeXLSX writes set as a single-sheet workbook using the CSV column order.
func EncodeXLSX(w io.Writer, set CandidateSet) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(XLSXSheetName)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, h := range CSVHeader {
		header.AddCell().SetString(h)
	}
	for _, c := range set.items {
		row := sheet.AddRow()
		row.AddCell().SetString(c.ID)
		row.AddCell().SetString(c.StructureCode)
		row.AddCell().SetFloat(c.MolecularWeight)
		row.AddCell().SetFloat(c.BindingAffinity)
		row.AddCell().SetFloat(c.DockingScore)
		row.AddCell().SetFloat(c.DruggabilityScore)
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to write xlsx")
	}
	return nil
}

//Personal.AI order the ending
