package model

import (
	"github.com/samber/lo"

	"timegrid/internal/catalog"
)

// Report explains why no complete schedule could be produced and suggests
// remediation. Producing it never fails: it is the terminal fallback of the
// pipeline.
type Report struct {
	// Courses whose eligible-teacher set is empty. Catalogue construction
	// binds such courses to the placeholder, so a non-empty list indicates a
	// corrupted catalogue.
	TeacherlessCourses []uint64
	// Courses bound to the placeholder teacher: scheduling was attempted for
	// them, but the records declare no lecturer. A data-quality signal.
	PlaceholderCourses []uint64

	CoursesPerClass []ClassLoad

	Obligations uint64
	Capacity    uint64 // days x periods x rooms
	Shortfall   uint64 // obligations beyond capacity; zero when capacity suffices
	Suggestions []string

	// Duplicate course codes seen in the raw records. Construction
	// deduplicates, so these are reported as data-integrity warnings only.
	DuplicateCodes []string
}

type ClassLoad struct {
	Class   uint64
	Courses uint64
}

type Analyzer interface {
	// Analyze inspects the catalogue and grid capacity alone; it never calls
	// a solver.
	Analyze(cat *catalog.Catalog, grid Grid) Report
}

func NewAnalyzer() Analyzer {
	return &capacityAnalyzer{}
}

type capacityAnalyzer struct{}

func (analyzer *capacityAnalyzer) Analyze(cat *catalog.Catalog, grid Grid) Report {
	report := Report{
		DuplicateCodes: cat.DuplicateCodes,
	}

	for courseId, course := range cat.Courses {
		if len(course.Teachers) == 0 {
			report.TeacherlessCourses = append(report.TeacherlessCourses, uint64(courseId))
			continue
		}
		if lo.SomeBy(course.Teachers, func(teacherId uint64) bool { return cat.Teachers[teacherId].Placeholder }) {
			report.PlaceholderCourses = append(report.PlaceholderCourses, uint64(courseId))
		}
	}

	report.CoursesPerClass = lo.Map(cat.Classes, func(class catalog.Class, classId int) ClassLoad {
		return ClassLoad{Class: uint64(classId), Courses: uint64(len(class.Program))}
	})

	report.Obligations = cat.Obligations()
	report.Capacity = grid.Days * grid.Periods * uint64(len(cat.Rooms))
	if report.Obligations > report.Capacity {
		report.Shortfall = report.Obligations - report.Capacity
		report.Suggestions = []string{
			"increase the number of rooms",
			"increase the number of slots (days or periods)",
			"reduce the number of courses to schedule",
			"allow room sharing for compatible courses",
		}
	}

	return report
}
