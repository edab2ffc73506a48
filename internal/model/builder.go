package model

import (
	"timegrid/internal/catalog"
)

// LinkWeight is the dominant per-obligation reward. It dwarfs any period
// weight a single assignment can earn, so coverage is always preferred over
// time-of-day placement; credit and period terms only break ties among
// equally-covering solutions.
const LinkWeight int64 = 1000

type Builder interface {
	// Build turns a catalogue and grid into a constraint model. Pure function
	// of its inputs: the same catalogue and grid always yield the same model.
	Build(cat *catalog.Catalog, grid Grid) (*Model, error)
}

func NewBuilder() Builder {
	return &sparseBuilder{}
}

type sparseBuilder struct{}

type slotKey struct {
	Owner  uint64
	Day    uint64
	Period uint64
}

func (builder *sparseBuilder) Build(cat *catalog.Catalog, grid Grid) (*Model, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		Vars:  make(map[VarKey]uint64),
		Links: make(map[LinkKey]uint64),
	}

	//** Decision variables, valid tuples only
	linkOrder := make([]LinkKey, 0)
	perLink := make(map[LinkKey][]uint64)
	perClassSlot := make(map[slotKey][]uint64)
	perTeacherSlot := make(map[slotKey][]uint64)
	perRoomSlot := make(map[slotKey][]uint64)

	for classId, class := range cat.Classes {
		for _, courseId := range class.Program {
			link := LinkKey{Class: uint64(classId), Course: courseId}
			linkOrder = append(linkOrder, link)

			for roomId := range cat.Rooms {
				for day := uint64(0); day < grid.Days; day++ {
					for period := uint64(0); period < grid.Periods; period++ {
						for _, teacherId := range cat.Courses[courseId].Teachers {
							key := VarKey{
								Class:   uint64(classId),
								Course:  courseId,
								Room:    uint64(roomId),
								Day:     day,
								Period:  period,
								Teacher: teacherId,
							}
							id := uint64(len(m.Keys)) + 1
							m.Vars[key] = id
							m.Keys = append(m.Keys, key)

							perLink[link] = append(perLink[link], id)
							perClassSlot[slotKey{key.Class, day, period}] = append(perClassSlot[slotKey{key.Class, day, period}], id)
							perTeacherSlot[slotKey{teacherId, day, period}] = append(perTeacherSlot[slotKey{teacherId, day, period}], id)
							perRoomSlot[slotKey{key.Room, day, period}] = append(perRoomSlot[slotKey{key.Room, day, period}], id)
						}
					}
				}
			}
		}
	}

	//** Linking variables and equalities
	// A link with no assignment variables (no rooms, or a degenerate grid) is
	// forced false by its empty equality: the course is necessarily left
	// unscheduled.
	for _, link := range linkOrder {
		id := uint64(len(m.Keys)+len(m.LinkKeys)) + 1
		m.Links[link] = id
		m.LinkKeys = append(m.LinkKeys, link)
		m.Equalities = append(m.Equalities, Equality{Link: id, Vars: perLink[link]})
	}
	m.NumVars = uint64(len(m.Keys) + len(m.LinkKeys))

	//** Hard constraints
	// 1. Class non-overlap: one course at a time per class.
	for classId := range cat.Classes {
		builder.appendSlotGroups(m, perClassSlot, uint64(classId), grid)
	}
	// 2. Course at-most-once (not exactly-once): an over-constrained instance
	// still yields a partial feasible schedule instead of global
	// infeasibility.
	for _, link := range linkOrder {
		if len(perLink[link]) > 1 {
			m.AtMostOne = append(m.AtMostOne, perLink[link])
		}
	}
	// 3. Teacher non-overlap.
	for teacherId := range cat.Teachers {
		builder.appendSlotGroups(m, perTeacherSlot, uint64(teacherId), grid)
	}
	// 4. Room non-overlap.
	for roomId := range cat.Rooms {
		builder.appendSlotGroups(m, perRoomSlot, uint64(roomId), grid)
	}

	//** Objective
	for _, link := range linkOrder {
		credit := cat.Courses[link.Course].Credit
		m.Objective = append(m.Objective, Term{Var: m.Links[link], Weight: LinkWeight + int64(credit)})
	}
	for id, key := range m.Keys {
		m.Objective = append(m.Objective, Term{Var: uint64(id) + 1, Weight: grid.PeriodWeights[key.Period]})
	}

	return m, nil
}

func (builder *sparseBuilder) appendSlotGroups(m *Model, groups map[slotKey][]uint64, owner uint64, grid Grid) {
	for day := uint64(0); day < grid.Days; day++ {
		for period := uint64(0); period < grid.Periods; period++ {
			group := groups[slotKey{owner, day, period}]
			if len(group) > 1 {
				m.AtMostOne = append(m.AtMostOne, group)
			}
		}
	}
}
