package model

import "fmt"

// Cell is one filled slot of a class's week.
type Cell struct {
	Course  uint64
	Teacher uint64
	Room    uint64
}

// Timetable maps every (class, day, period) cell to at most one placement.
// It is the only mutable artifact of a solve and is written exactly once,
// during extraction.
type Timetable struct {
	Grid  Grid
	cells [][][]*Cell // [class][day][period]
}

func newTimetable(classes uint64, grid Grid) *Timetable {
	cells := make([][][]*Cell, classes)
	for class := range cells {
		cells[class] = make([][]*Cell, grid.Days)
		for day := range cells[class] {
			cells[class][day] = make([]*Cell, grid.Periods)
		}
	}
	return &Timetable{Grid: grid, cells: cells}
}

// Classes returns the number of class rows in the grid.
func (timetable *Timetable) Classes() uint64 {
	return uint64(len(timetable.cells))
}

// At returns the placement of a cell, if any.
func (timetable *Timetable) At(class, day, period uint64) (Cell, bool) {
	if class >= uint64(len(timetable.cells)) || day >= timetable.Grid.Days || period >= timetable.Grid.Periods {
		return Cell{}, false
	}
	cell := timetable.cells[class][day][period]
	if cell == nil {
		return Cell{}, false
	}
	return *cell, true
}

func (timetable *Timetable) set(class, day, period uint64, cell Cell) error {
	if existing := timetable.cells[class][day][period]; existing != nil {
		return fmt.Errorf("cell (class %v, day %v, period %v) already holds course %v while placing course %v",
			class, day, period, existing.Course, cell.Course)
	}
	timetable.cells[class][day][period] = &cell
	return nil
}

// Stats summarizes a timetable's coverage of the catalogue's obligations.
type Stats struct {
	Scheduled   uint64
	Morning     uint64 // scheduled within the grid's leading morning periods
	Unscheduled []Unscheduled
}

// Unscheduled is a (class, course) obligation absent from the timetable,
// annotated with the course's credit weight.
type Unscheduled struct {
	Class  uint64
	Course uint64
	Credit uint64
}

// MorningShare is the percentage of scheduled courses placed in the morning;
// zero when nothing is scheduled.
func (stats Stats) MorningShare() float64 {
	if stats.Scheduled == 0 {
		return 0
	}
	return float64(stats.Morning) * 100 / float64(stats.Scheduled)
}
