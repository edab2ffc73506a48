package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"timegrid/internal/catalog"
)

func smallGrid() Grid {
	return Grid{Days: 2, Periods: 2, PeriodWeights: []int64{2, 1}, MorningPeriods: 1}
}

func TestBuild(t *testing.T) {
	t.Run("variables cover valid tuples only", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes:  []catalog.Class{{Name: "1-S1", Program: []uint64{0}}},
			Courses:  []catalog.Course{{Code: "CS101", Credit: 4, Teachers: []uint64{0}}},
			Rooms:    []catalog.Room{{Label: "A-101"}, {Label: "B-202"}},
			Teachers: []catalog.Teacher{{Name: "Ada"}},
		}

		// Act
		m, err := NewBuilder().Build(cat, smallGrid())

		// Assert
		assert.Nil(t, err)
		assert.Len(t, m.Keys, 8) // 2 rooms x 2 days x 2 periods x 1 teacher
		assert.Len(t, m.LinkKeys, 1)
		assert.Equal(t, uint64(9), m.NumVars)

		// 4 class-slot groups + 1 course group + 4 teacher-slot groups; room
		// slots hold a single variable each and are vacuous.
		assert.Len(t, m.AtMostOne, 9)

		assert.Len(t, m.Equalities, 1)
		assert.Equal(t, uint64(9), m.Equalities[0].Link)
		assert.Len(t, m.Equalities[0].Vars, 8)
	})

	t.Run("objective rewards coverage over placement", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes:  []catalog.Class{{Name: "1-S1", Program: []uint64{0}}},
			Courses:  []catalog.Course{{Code: "CS101", Credit: 4, Teachers: []uint64{0}}},
			Rooms:    []catalog.Room{{Label: "A-101"}},
			Teachers: []catalog.Teacher{{Name: "Ada"}},
		}

		// Act
		m, err := NewBuilder().Build(cat, smallGrid())

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, Term{Var: m.Links[LinkKey{Class: 0, Course: 0}], Weight: LinkWeight + 4}, m.Objective[0])
		for _, term := range m.Objective[1:] {
			key := m.Keys[term.Var-1]
			assert.Equal(t, smallGrid().PeriodWeights[key.Period], term.Weight)
		}
	})

	t.Run("courses outside the program get no variables", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes: []catalog.Class{{Name: "1-S1", Program: []uint64{0}}},
			Courses: []catalog.Course{
				{Code: "CS101", Credit: 4, Teachers: []uint64{0}},
				{Code: "CS999", Credit: 6, Teachers: []uint64{0}},
			},
			Rooms:    []catalog.Room{{Label: "A-101"}},
			Teachers: []catalog.Teacher{{Name: "Ada"}},
		}

		// Act
		m, err := NewBuilder().Build(cat, smallGrid())

		// Assert
		assert.Nil(t, err)
		for _, key := range m.Keys {
			assert.Equal(t, uint64(0), key.Course)
		}
		_, linked := m.Links[LinkKey{Class: 0, Course: 1}]
		assert.False(t, linked)
	})

	t.Run("empty program contributes nothing", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes:  []catalog.Class{{Name: "1-S1"}},
			Rooms:    []catalog.Room{{Label: "A-101"}},
			Teachers: []catalog.Teacher{{Name: "Ada"}},
		}

		// Act
		m, err := NewBuilder().Build(cat, smallGrid())

		// Assert
		assert.Nil(t, err)
		assert.Empty(t, m.Keys)
		assert.Empty(t, m.LinkKeys)
		assert.Empty(t, m.AtMostOne)
	})

	t.Run("no rooms forces the link false", func(t *testing.T) {
		// Arrange
		cat := &catalog.Catalog{
			Classes:  []catalog.Class{{Name: "1-S1", Program: []uint64{0}}},
			Courses:  []catalog.Course{{Code: "CS101", Credit: 4, Teachers: []uint64{0}}},
			Teachers: []catalog.Teacher{{Name: "Ada"}},
		}

		// Act
		m, err := NewBuilder().Build(cat, smallGrid())

		// Assert
		assert.Nil(t, err)
		assert.Empty(t, m.Keys)
		assert.Len(t, m.Equalities, 1)
		assert.Empty(t, m.Equalities[0].Vars)
	})

	t.Run("invalid grids are rejected", func(t *testing.T) {
		scenarios := []Grid{
			{Days: 0, Periods: 5, PeriodWeights: []int64{5, 4, 3, 2, 1}},
			{Days: 6, Periods: 2, PeriodWeights: []int64{5}},
			{Days: 6, Periods: 2, PeriodWeights: []int64{1, 2}},
			{Days: 6, Periods: 2, PeriodWeights: []int64{1, 0}},
			{Days: 6, Periods: 3, PeriodWeights: []int64{1, 0, -1}},
			{Days: 6, Periods: 2, PeriodWeights: []int64{2, 1}, MorningPeriods: 3},
		}

		for _, grid := range scenarios {
			_, err := NewBuilder().Build(&catalog.Catalog{}, grid)
			assert.NotNil(t, err)
		}
	})
}
