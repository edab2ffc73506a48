package solve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timegrid/internal/catalog"
	"timegrid/internal/model"
)

func buildModel(t *testing.T, cat *catalog.Catalog, grid model.Grid) *model.Model {
	t.Helper()
	m, err := model.NewBuilder().Build(cat, grid)
	assert.Nil(t, err)
	return m
}

func solveAndExtract(t *testing.T, cat *catalog.Catalog, grid model.Grid) (*model.Timetable, model.Stats) {
	t.Helper()
	m := buildModel(t, cat, grid)

	solution, err := NewLocalSolver().Solve(m, time.Second)
	assert.Nil(t, err)
	assert.True(t, solution.Usable())
	assert.True(t, model.Verify(m, solution.Values))

	timetable, stats, err := model.NewExtractor().Extract(m, solution.Values, cat, grid)
	assert.Nil(t, err)
	return timetable, stats
}

func TestLocalSolver(t *testing.T) {
	t.Run("two courses over two days are fully scheduled", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes: []catalog.Class{{Name: "1-S1", Program: []uint64{0, 1}}},
			Courses: []catalog.Course{
				{Code: "CS101", Credit: 4, Teachers: []uint64{0}},
				{Code: "CS102", Credit: 2, Teachers: []uint64{1}},
			},
			Rooms:    []catalog.Room{{Label: "A-101"}},
			Teachers: []catalog.Teacher{{Name: "Ada"}, {Name: "Grace"}},
		}
		grid := model.Grid{Days: 2, Periods: 1, PeriodWeights: []int64{5}, MorningPeriods: 1}

		// Act
		_, stats := solveAndExtract(t, cat, grid)

		// Assert
		assert.Equal(t, uint64(2), stats.Scheduled)
		assert.Empty(t, stats.Unscheduled)
	})

	t.Run("three courses against two slots schedule exactly two", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes: []catalog.Class{{Name: "1-S1", Program: []uint64{0, 1, 2}}},
			Courses: []catalog.Course{
				{Code: "CS101", Credit: 4, Teachers: []uint64{0}},
				{Code: "CS102", Credit: 2, Teachers: []uint64{1}},
				{Code: "CS103", Credit: 2, Teachers: []uint64{2}},
			},
			Rooms:    []catalog.Room{{Label: "A-101"}},
			Teachers: []catalog.Teacher{{Name: "Ada"}, {Name: "Grace"}, {Name: "Edsger"}},
		}
		grid := model.Grid{Days: 2, Periods: 1, PeriodWeights: []int64{5}, MorningPeriods: 1}

		// Act
		_, stats := solveAndExtract(t, cat, grid)
		report := model.NewAnalyzer().Analyze(cat, grid)

		// Assert
		assert.Equal(t, uint64(2), stats.Scheduled)
		assert.Len(t, stats.Unscheduled, 1)
		assert.Equal(t, uint64(1), report.Shortfall)
	})

	t.Run("shared teacher and single slot bind both non-overlaps", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes: []catalog.Class{
				{Name: "1-S1", Program: []uint64{0}},
				{Name: "2-S1", Program: []uint64{0}},
			},
			Courses:  []catalog.Course{{Code: "CS101", Credit: 4, Teachers: []uint64{0}}},
			Rooms:    []catalog.Room{{Label: "A-101"}},
			Teachers: []catalog.Teacher{{Name: "Ada"}},
		}
		grid := model.Grid{Days: 1, Periods: 1, PeriodWeights: []int64{5}, MorningPeriods: 1}

		// Act
		_, stats := solveAndExtract(t, cat, grid)

		// Assert
		assert.Equal(t, uint64(1), stats.Scheduled)
		assert.Len(t, stats.Unscheduled, 1)
	})

	t.Run("teacherless course is scheduled through the placeholder", func(t *testing.T) {
		// Arrange
		curriculum := catalog.Curriculum{
			Levels: map[string]map[string]catalog.Semester{
				"1": {"S1": catalog.Semester{Subjects: []catalog.Subject{
					{Code: "CS101", Credit: 4},
				}}},
			},
		}
		cat := catalog.Build(curriculum, catalog.RoomInventory{Rooms: []catalog.RoomEntry{{Label: "A-101"}}})
		grid := model.Grid{Days: 1, Periods: 1, PeriodWeights: []int64{5}, MorningPeriods: 1}

		// Act
		timetable, stats := solveAndExtract(t, cat, grid)

		// Assert
		assert.Equal(t, uint64(1), stats.Scheduled)
		cell, ok := timetable.At(0, 0, 0)
		assert.True(t, ok)
		assert.True(t, cat.Teachers[cell.Teacher].Placeholder)
	})

	t.Run("scheduled courses prefer earlier periods", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes:  []catalog.Class{{Name: "1-S1", Program: []uint64{0}}},
			Courses:  []catalog.Course{{Code: "CS101", Credit: 4, Teachers: []uint64{0}}},
			Rooms:    []catalog.Room{{Label: "A-101"}},
			Teachers: []catalog.Teacher{{Name: "Ada"}},
		}
		grid := model.Grid{Days: 1, Periods: 3, PeriodWeights: []int64{3, 2, 1}, MorningPeriods: 2}

		// Act
		timetable, stats := solveAndExtract(t, cat, grid)

		// Assert
		_, ok := timetable.At(0, 0, 0)
		assert.True(t, ok)
		assert.Equal(t, uint64(1), stats.Morning)
	})

	t.Run("empty model is vacuously optimal", func(t *testing.T) {
		// Arrange
		m := buildModel(t, &catalog.Catalog{}, model.DefaultGrid())

		// Act
		solution, err := NewLocalSolver().Solve(m, time.Second)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, StatusOptimal, solution.Status)
		assert.Equal(t, int64(0), solution.Objective)
	})
}

func TestLocalSolverMonotonicity(t *testing.T) {
	// Arrange: a contended instance where improvement passes matter.
	cat := &catalog.Catalog{
		Classes: []catalog.Class{
			{Name: "1-S1", Program: []uint64{0, 1, 2}},
			{Name: "2-S1", Program: []uint64{0, 1, 2}},
		},
		Courses: []catalog.Course{
			{Code: "CS101", Credit: 4, Teachers: []uint64{0}},
			{Code: "CS102", Credit: 2, Teachers: []uint64{0, 1}},
			{Code: "CS103", Credit: 2, Teachers: []uint64{1}},
		},
		Rooms:    []catalog.Room{{Label: "A-101"}, {Label: "B-202"}},
		Teachers: []catalog.Teacher{{Name: "Ada"}, {Name: "Grace"}},
	}
	grid := model.Grid{Days: 2, Periods: 2, PeriodWeights: []int64{2, 1}, MorningPeriods: 1}
	m := buildModel(t, cat, grid)

	// Act
	previous := int64(-1)
	for passes := 1; passes <= 5; passes++ {
		solver := &localSolver{maxPasses: passes}
		solution, err := solver.Solve(m, time.Second)

		// Assert
		assert.Nil(t, err)
		assert.True(t, model.Verify(m, solution.Values))
		assert.GreaterOrEqual(t, solution.Objective, previous)
		previous = solution.Objective
	}
}
