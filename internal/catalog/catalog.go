package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// PlaceholderTeacherName is the display name of the sentinel teacher bound to
// courses that declare no lecturer at all. The sentinel is tagged through
// Teacher.Placeholder, never through its name, so it cannot collide with a
// real teacher.
const PlaceholderTeacherName = "(unassigned)"

type Class struct {
	Name    string
	Program []uint64 // course ids, declaration order, deduplicated
}

type Course struct {
	Code     string
	Credit   uint64
	Teachers []uint64 // eligible teacher ids, first-seen order
}

type Room struct {
	Label string
}

type Teacher struct {
	Name        string
	Placeholder bool
}

// Catalog is the immutable entity store every downstream stage reads from.
// Ids are dense slice indices. Built once from the raw records; never mutated
// afterwards.
type Catalog struct {
	Classes  []Class
	Courses  []Course
	Rooms    []Room
	Teachers []Teacher

	// Course codes listed more than once within a single class's program.
	// Kept as a data-integrity signal for diagnostics.
	DuplicateCodes []string
}

// Obligations counts every (class, course) pair the catalogue demands.
func (cat *Catalog) Obligations() uint64 {
	return lo.SumBy(cat.Classes, func(class Class) uint64 { return uint64(len(class.Program)) })
}

// Build assembles a Catalog from raw records. Level and semester keys are
// visited in sorted order so the same input always yields the same ids.
func Build(curriculum Curriculum, inventory RoomInventory) *Catalog {
	builder := newCatalogBuilder()

	levels := lo.Keys(curriculum.Levels)
	slices.Sort(levels)
	for _, level := range levels {
		semesters := lo.Keys(curriculum.Levels[level])
		slices.Sort(semesters)
		for _, semester := range semesters {
			builder.addClass(fmt.Sprintf("%v-%v", level, semester), curriculum.Levels[level][semester].Subjects)
		}
	}

	for _, entry := range inventory.Rooms {
		builder.addRoom(entry.Label)
	}

	builder.bindPlaceholder()
	return &builder.catalog
}

type catalogBuilder struct {
	catalog    Catalog
	courseIds  map[string]uint64
	teacherIds map[string]uint64
	roomLabels map[string]bool
}

func newCatalogBuilder() *catalogBuilder {
	return &catalogBuilder{
		courseIds:  make(map[string]uint64),
		teacherIds: make(map[string]uint64),
		roomLabels: make(map[string]bool),
	}
}

func (builder *catalogBuilder) addClass(name string, subjects []Subject) {
	class := Class{Name: name, Program: make([]uint64, 0, len(subjects))}

	for _, subject := range subjects {
		code := strings.TrimSpace(subject.Code)
		if code == "" {
			continue
		}

		courseId, known := builder.courseIds[code]
		if !known {
			// First occurrence fixes the credit value; later occurrences
			// never overwrite it.
			courseId = uint64(len(builder.catalog.Courses))
			builder.courseIds[code] = courseId
			builder.catalog.Courses = append(builder.catalog.Courses, Course{
				Code:   code,
				Credit: parseCredit(subject.Credit),
			})
		}

		builder.mergeTeachers(courseId, subject.Lecturers)
		builder.mergeTeachers(courseId, subject.Assistants)

		if slices.Contains(class.Program, courseId) {
			builder.catalog.DuplicateCodes = append(builder.catalog.DuplicateCodes, code)
			continue
		}
		class.Program = append(class.Program, courseId)
	}

	builder.catalog.Classes = append(builder.catalog.Classes, class)
}

func (builder *catalogBuilder) mergeTeachers(courseId uint64, names []string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		teacherId, known := builder.teacherIds[name]
		if !known {
			teacherId = uint64(len(builder.catalog.Teachers))
			builder.teacherIds[name] = teacherId
			builder.catalog.Teachers = append(builder.catalog.Teachers, Teacher{Name: name})
		}

		course := &builder.catalog.Courses[courseId]
		if !slices.Contains(course.Teachers, teacherId) {
			course.Teachers = append(course.Teachers, teacherId)
		}
	}
}

func (builder *catalogBuilder) addRoom(label string) {
	label = strings.TrimSpace(label)
	if label == "" || builder.roomLabels[label] {
		return
	}
	builder.roomLabels[label] = true
	builder.catalog.Rooms = append(builder.catalog.Rooms, Room{Label: label})
}

// bindPlaceholder assigns the sentinel teacher to every course that ended up
// with no eligible teacher, so scheduling is still attempted for it.
func (builder *catalogBuilder) bindPlaceholder() {
	placeholder := int64(-1)
	for courseId := range builder.catalog.Courses {
		if len(builder.catalog.Courses[courseId].Teachers) > 0 {
			continue
		}
		if placeholder < 0 {
			placeholder = int64(len(builder.catalog.Teachers))
			builder.catalog.Teachers = append(builder.catalog.Teachers, Teacher{
				Name:        PlaceholderTeacherName,
				Placeholder: true,
			})
		}
		builder.catalog.Courses[courseId].Teachers = []uint64{uint64(placeholder)}
	}
}

func parseCredit(raw any) uint64 {
	switch value := raw.(type) {
	case float64:
		if value < 0 {
			return 0
		}
		return uint64(value)
	case int:
		if value < 0 {
			return 0
		}
		return uint64(value)
	case string:
		credit, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0
		}
		return credit
	default:
		return 0
	}
}
