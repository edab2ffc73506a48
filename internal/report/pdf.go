package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"timegrid/internal/catalog"
	"timegrid/internal/model"
)

// PDF renders each class's weekly grid as one landscape A4 page: day columns,
// period rows, filled cells showing course, teacher and room.
func PDF(timetable *model.Timetable, cat *catalog.Catalog, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)

	colWidth := 277.0 / float64(timetable.Grid.Days+1)

	for classId, class := range cat.Classes {
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, fmt.Sprintf("%v - %v", title, class.Name), "", 1, "C", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(colWidth, 8, "Period", "1", 0, "C", false, 0, "")
		for day := uint64(0); day < timetable.Grid.Days; day++ {
			pdf.CellFormat(colWidth, 8, dayName(day), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		for period := uint64(0); period < timetable.Grid.Periods; period++ {
			pdf.CellFormat(colWidth, 16, periodLabel(period), "1", 0, "C", false, 0, "")
			for day := uint64(0); day < timetable.Grid.Days; day++ {
				text := ""
				if cell, filled := timetable.At(uint64(classId), day, period); filled {
					text = fmt.Sprintf("%v / %v / %v",
						cat.Courses[cell.Course].Code,
						truncate(cat.Teachers[cell.Teacher].Name, 15),
						cat.Rooms[cell.Room].Label,
					)
				}
				pdf.CellFormat(colWidth, 16, text, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buffer := &bytes.Buffer{}
	if err := pdf.Output(buffer); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buffer.Bytes(), nil
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max-3] + "..."
}
