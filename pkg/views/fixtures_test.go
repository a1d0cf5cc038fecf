package views

import (
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// score builds a cohort score; negative literals mean absent.
func score(v float64) cohort.Score {
	if v < 0 {
		return cohort.Absent()
	}

	return cohort.Present(v)
}

func student(usn, name string, pome, dbms, aiml, toc float64, course subject.ElectiveCourse, elective float64) cohort.Student {
	return cohort.MustStudent(cohort.Record{
		SlNo: 1,
		USN:  usn,
		Name: name,
		POME: score(pome),
		DBMS: score(dbms),
		AIML: score(aiml),
		TOC:  score(toc),
		Elective: cohort.Enrollment{
			Course: course,
			Score:  score(elective),
		},
	})
}

func sampleClass() []cohort.Student {
	return []cohort.Student{
		student("1XY21CS001", "Asha Rao", 90, 135, 135, 90, subject.NLP, 90),
		student("1XY21CS002", "Bharath K", 70, 100, 110, 65, subject.CloudComputing, 75),
		student("1XY21CS003", "Chitra M", 35, 50, 55, 30, subject.CloudComputing, 20),
		student("1XY21CS004", "Dinesh P", 60, 90, -1, 55, subject.CloudComputing, -1),
		student("1XY21CS005", "Esha N", 80, 120, 125, 85, subject.NLP, 88),
	}
}
