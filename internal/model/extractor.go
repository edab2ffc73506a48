package model

import (
	"fmt"

	"timegrid/internal/catalog"
)

type Extractor interface {
	// Extract converts a raw satisfying assignment into a per-class weekly
	// timetable and its coverage statistics. Two true assignment variables in
	// the same (class, day, period) cell mean the class non-overlap
	// constraint was not actually enforced; that is a fatal consistency error
	// and is returned, never silently resolved.
	Extract(m *Model, values []bool, cat *catalog.Catalog, grid Grid) (*Timetable, Stats, error)
}

func NewExtractor() Extractor {
	return &gridExtractor{}
}

type gridExtractor struct{}

func (extractor *gridExtractor) Extract(m *Model, values []bool, cat *catalog.Catalog, grid Grid) (*Timetable, Stats, error) {
	if uint64(len(values)) < m.NumVars {
		return nil, Stats{}, fmt.Errorf("assignment holds %v values for %v variables", len(values), m.NumVars)
	}

	timetable := newTimetable(uint64(len(cat.Classes)), grid)
	scheduled := make(map[LinkKey]bool)
	stats := Stats{}

	for id := uint64(1); id <= uint64(len(m.Keys)); id++ {
		if !values[id-1] {
			continue
		}
		key := m.Keys[id-1]

		cell := Cell{Course: key.Course, Teacher: key.Teacher, Room: key.Room}
		if err := timetable.set(key.Class, key.Day, key.Period, cell); err != nil {
			return nil, Stats{}, fmt.Errorf("internal consistency error: %w", err)
		}

		scheduled[LinkKey{Class: key.Class, Course: key.Course}] = true
		stats.Scheduled++
		if key.Period < grid.MorningPeriods {
			stats.Morning++
		}
	}

	//** Unscheduled complement: obligations present in the programs but
	// absent from the timetable.
	for classId, class := range cat.Classes {
		for _, courseId := range class.Program {
			if scheduled[LinkKey{Class: uint64(classId), Course: courseId}] {
				continue
			}
			stats.Unscheduled = append(stats.Unscheduled, Unscheduled{
				Class:  uint64(classId),
				Course: courseId,
				Credit: cat.Courses[courseId].Credit,
			})
		}
	}

	return timetable, stats, nil
}
