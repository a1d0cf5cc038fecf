package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
)

// LoadXLSX reads the first sheet of the workbook at path.
func LoadXLSX(path, title string) (*cohort.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, title)
}

// ReadXLSX reads the first sheet of a workbook stream.
func ReadXLSX(r io.Reader, title string) (*cohort.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return readWorkbook(f, title)
}

func readWorkbook(f *excelize.File, title string) (*cohort.Dataset, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	students, err := ParseRows(rows)
	if err != nil {
		return nil, err
	}

	return cohort.NewDataset(title, students)
}

// WriteXLSX writes ds as a score sheet in the layout ParseRows reads.
func WriteXLSX(w io.Writer, ds *cohort.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}

	err := f.SetSheetRow(sheet, "A1", &header)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, s := range ds.Students() {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return fmt.Errorf("address row %d: %w", i+2, cellErr)
		}

		row := FormatRow(s)

		err = f.SetSheetRow(sheet, cell, &row)
		if err != nil {
			return fmt.Errorf("write %s: %w", s.USN(), err)
		}
	}

	err = f.Write(w)
	if err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}
