package analytics

import (
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// score converts a sentinel-free literal: negative means absent.
func score(v float64) cohort.Score {
	if v < 0 {
		return cohort.Absent()
	}

	return cohort.Present(v)
}

func student(slNo int, usn string, pome, dbms, aiml, toc float64, course subject.ElectiveCourse, elective float64) cohort.Student {
	return cohort.MustStudent(cohort.Record{
		SlNo: slNo,
		USN:  usn,
		Name: "Student " + usn,
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
		student(1, "CS001", 90, 135, 135, 90, subject.NLP, 90),
		student(2, "CS002", 70, 100, 110, 65, subject.CloudComputing, 75),
		student(3, "CS003", 35, 50, 55, 30, subject.CloudComputing, 20),
		student(4, "CS004", 60, 90, -1, 55, subject.QuantumComputing, -1),
		student(5, "CS005", 80, 120, 125, 85, subject.NLP, 88),
	}
}
