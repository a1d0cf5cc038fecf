package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// Spreadsheet column layout, zero-based.
const (
	colSlNo = iota
	colUSN
	colSIN
	colName
	colPOME
	colDBMS
	colAIML
	colTOC
	colCloudComputing
	colNLP
	colQuantumComputing

	rowWidth = iota
)

// minIdentityCells is the number of leading cells a row needs to carry a
// serial number, ID and name. Spreadsheet readers drop trailing blank
// cells, so shorter score columns are padded as absent.
const minIdentityCells = colName + 1

// absentMarker is the cell value used for students exempted from an exam.
const absentMarker = "DX"

// Header is the expected header row of the score sheet.
var Header = []string{
	"Sl No", "USN", "SIN", "Name", "POME", "DBMS", "AIML", "TOC",
	"Cloud Computing", "NLP", "Quantum Computing",
}

// ParseRows converts a sheet, header row first, into students. Rows without
// a numeric serial number, an ID or a name are skipped. A row whose scores
// fail validation aborts the parse.
func ParseRows(rows [][]string) ([]cohort.Student, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	students := make([]cohort.Student, 0, len(rows)-1)

	for i, row := range rows[1:] {
		rec, ok := ParseRow(row)
		if !ok {
			continue
		}

		s, err := cohort.NewStudent(rec)
		if err != nil {
			return nil, fmt.Errorf("sheet row %d: %w", i+2, err)
		}

		students = append(students, s)
	}

	return students, nil
}

// ParseRow converts one data row into a record. It reports false for rows
// that do not describe a student.
func ParseRow(row []string) (cohort.Record, bool) {
	if len(row) < minIdentityCells {
		return cohort.Record{}, false
	}

	if len(row) < rowWidth {
		padded := make([]string, rowWidth)
		copy(padded, row)
		row = padded
	}

	slNo, err := strconv.ParseFloat(strings.TrimSpace(row[colSlNo]), 64)
	if err != nil || slNo != math.Trunc(slNo) {
		return cohort.Record{}, false
	}

	usn := strings.TrimSpace(row[colUSN])
	name := strings.TrimSpace(row[colName])

	if usn == "" || name == "" {
		return cohort.Record{}, false
	}

	return cohort.Record{
		SlNo:     int(slNo),
		USN:      usn,
		Name:     name,
		POME:     ParseScore(row[colPOME]),
		DBMS:     ParseScore(row[colDBMS]),
		AIML:     ParseScore(row[colAIML]),
		TOC:      ParseScore(row[colTOC]),
		Elective: resolveElective(row[colCloudComputing], row[colNLP], row[colQuantumComputing]),
	}, true
}

// ParseScore normalizes one score cell. Blank cells, the DX marker and
// unparsable text are absent.
func ParseScore(cell string) cohort.Score {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" || strings.EqualFold(trimmed, absentMarker) {
		return cohort.Absent()
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return cohort.Absent()
	}

	return cohort.Present(v)
}

// resolveElective picks the first elective column holding a score. A student
// with no elective score is placed in Cloud Computing with an absent score.
func resolveElective(cc, nlp, qc string) cohort.Enrollment {
	candidates := []struct {
		course subject.ElectiveCourse
		cell   string
	}{
		{subject.CloudComputing, cc},
		{subject.NLP, nlp},
		{subject.QuantumComputing, qc},
	}

	for _, c := range candidates {
		if score := ParseScore(c.cell); score.IsPresent() {
			return cohort.Enrollment{Course: c.course, Score: score}
		}
	}

	return cohort.Enrollment{Course: subject.CloudComputing, Score: cohort.Absent()}
}

// FormatRow is the inverse of ParseRow, used when writing sheets.
func FormatRow(s cohort.Student) []any {
	row := make([]any, rowWidth)
	row[colSlNo] = s.SlNo()
	row[colUSN] = s.USN()
	row[colSIN] = ""
	row[colName] = s.Name()

	for col, key := range map[int]subject.Key{colPOME: subject.POME, colDBMS: subject.DBMS, colAIML: subject.AIML, colTOC: subject.TOC} {
		row[col] = cellValue(s.Score(key))
	}

	for col := colCloudComputing; col <= colQuantumComputing; col++ {
		row[col] = ""
	}

	enrollment := s.Elective()

	switch enrollment.Course {
	case subject.CloudComputing:
		row[colCloudComputing] = cellValue(enrollment.Score)
	case subject.NLP:
		row[colNLP] = cellValue(enrollment.Score)
	case subject.QuantumComputing:
		row[colQuantumComputing] = cellValue(enrollment.Score)
	}

	return row
}

func cellValue(s cohort.Score) any {
	if v, ok := s.Get(); ok {
		return v
	}

	return absentMarker
}
