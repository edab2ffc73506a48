package report

import (
	"fmt"
	"strings"

	"timegrid/internal/catalog"
	"timegrid/internal/model"
)

// DayNames labels the grid's days in order.
var DayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// PeriodLabels gives the teaching hours of each period of a default grid day.
var PeriodLabels = []string{"07:00-09:55", "10:05-12:55", "13:05-15:55", "16:05-18:55", "19:05-21:55"}

func dayName(day uint64) string {
	if day < uint64(len(DayNames)) {
		return DayNames[day]
	}
	return fmt.Sprintf("Day %v", day+1)
}

func periodLabel(period uint64) string {
	if period < uint64(len(PeriodLabels)) {
		return PeriodLabels[period]
	}
	return fmt.Sprintf("Period %v", period+1)
}

// RenderTimetable renders every class's weekly grid as plain text.
func RenderTimetable(timetable *model.Timetable, cat *catalog.Catalog) string {
	var builder strings.Builder

	for classId, class := range cat.Classes {
		fmt.Fprintf(&builder, "\n=== TIMETABLE - %v ===\n", class.Name)
		for day := uint64(0); day < timetable.Grid.Days; day++ {
			fmt.Fprintf(&builder, "  %v:\n", dayName(day))
			for period := uint64(0); period < timetable.Grid.Periods; period++ {
				cell, filled := timetable.At(uint64(classId), day, period)
				if !filled {
					fmt.Fprintf(&builder, "    %v: -\n", periodLabel(period))
					continue
				}
				fmt.Fprintf(&builder, "    %v: %v with %v in %v\n",
					periodLabel(period),
					cat.Courses[cell.Course].Code,
					cat.Teachers[cell.Teacher].Name,
					cat.Rooms[cell.Room].Label,
				)
			}
		}
	}

	return builder.String()
}

// RenderStats renders the coverage summary of a solve.
func RenderStats(stats model.Stats, cat *catalog.Catalog) string {
	var builder strings.Builder

	builder.WriteString("\nStatistics:\n")
	fmt.Fprintf(&builder, "Scheduled courses: %v\n", stats.Scheduled)
	if stats.Scheduled > 0 {
		fmt.Fprintf(&builder, "Morning courses: %v (%.1f%%)\n", stats.Morning, stats.MorningShare())
	}

	if len(stats.Unscheduled) > 0 {
		fmt.Fprintf(&builder, "\nUnscheduled courses: %v\n", len(stats.Unscheduled))
		for _, missing := range stats.Unscheduled {
			fmt.Fprintf(&builder, "  - %v (class %v, %v credits)\n",
				cat.Courses[missing.Course].Code,
				cat.Classes[missing.Class].Name,
				missing.Credit,
			)
		}
	}

	return builder.String()
}

// RenderDiagnostics renders the infeasibility analysis.
func RenderDiagnostics(report model.Report, cat *catalog.Catalog) string {
	var builder strings.Builder

	builder.WriteString("\n=== SCHEDULING PROBLEM ANALYSIS ===\n")

	if len(report.TeacherlessCourses) > 0 {
		fmt.Fprintf(&builder, "\nCourses without any eligible teacher: %v\n", len(report.TeacherlessCourses))
		for _, courseId := range report.TeacherlessCourses {
			fmt.Fprintf(&builder, "  - %v\n", cat.Courses[courseId].Code)
		}
	}

	if len(report.PlaceholderCourses) > 0 {
		fmt.Fprintf(&builder, "\nCourses with no declared lecturer (placeholder assigned): %v\n", len(report.PlaceholderCourses))
		for _, courseId := range report.PlaceholderCourses {
			fmt.Fprintf(&builder, "  - %v\n", cat.Courses[courseId].Code)
		}
	}

	builder.WriteString("\nCourses per class:\n")
	for _, load := range report.CoursesPerClass {
		fmt.Fprintf(&builder, "  - %v: %v courses\n", cat.Classes[load.Class].Name, load.Courses)
	}

	if report.Shortfall > 0 {
		fmt.Fprintf(&builder, "\nFundamental problem: %v courses to schedule but only %v room-slots available (shortfall of %v).\n",
			report.Obligations, report.Capacity, report.Shortfall)
		builder.WriteString("Suggestions:\n")
		for i, suggestion := range report.Suggestions {
			fmt.Fprintf(&builder, "  %v. %v\n", i+1, suggestion)
		}
	}

	if len(report.DuplicateCodes) > 0 {
		fmt.Fprintf(&builder, "\nWarning: duplicate course codes in the raw records: %v\n", strings.Join(report.DuplicateCodes, ", "))
	}

	return builder.String()
}
