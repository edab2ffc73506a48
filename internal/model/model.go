package model

// VarKey identifies one candidate placement: class attends course in room
// with teacher during period of day. Variables exist only for valid
// combinations, so the index stays proportional to the actually-possible
// assignments rather than the full cross-product.
type VarKey struct {
	Class   uint64
	Course  uint64
	Room    uint64
	Day     uint64
	Period  uint64
	Teacher uint64
}

// LinkKey identifies one (class, course) obligation.
type LinkKey struct {
	Class  uint64
	Course uint64
}

// Term is the weighted objective contribution of a single variable.
type Term struct {
	Var    uint64
	Weight int64
}

// Equality binds a linking variable to the sum of its assignment variables.
// Together with the course at-most-once group that sum is 0 or 1, so the link
// is exactly the "scheduled somewhere" indicator.
type Equality struct {
	Link uint64
	Vars []uint64
}

// Model is the full constraint model: a sparse variable index over the valid
// assignment tuples, the four at-most-one constraint families, the linking
// equalities and the objective to maximize. Built once, read-only afterwards.
//
// Variable ids are 1-based so they double as DIMACS literals; assignment
// variables come first, linking variables after them.
type Model struct {
	Vars     map[VarKey]uint64
	Keys     []VarKey // reverse index: Keys[id-1]
	Links    map[LinkKey]uint64
	LinkKeys []LinkKey // reverse index: LinkKeys[id - len(Keys) - 1]

	// At most one variable of each group may be true in any solution. Groups
	// with fewer than two variables are vacuous and not materialized.
	AtMostOne  [][]uint64
	Equalities []Equality
	Objective  []Term

	NumVars uint64
}

// KeyOf returns the assignment tuple behind a variable id.
func (m *Model) KeyOf(id uint64) (VarKey, bool) {
	if id == 0 || id > uint64(len(m.Keys)) {
		return VarKey{}, false
	}
	return m.Keys[id-1], true
}

// LinkOf returns the obligation behind a linking variable id.
func (m *Model) LinkOf(id uint64) (LinkKey, bool) {
	offset := uint64(len(m.Keys))
	if id <= offset || id > offset+uint64(len(m.LinkKeys)) {
		return LinkKey{}, false
	}
	return m.LinkKeys[id-offset-1], true
}

// ObjectiveValue evaluates the objective under a raw assignment indexed by
// variable id - 1.
func (m *Model) ObjectiveValue(values []bool) int64 {
	var total int64
	for _, term := range m.Objective {
		if values[term.Var-1] {
			total += term.Weight
		}
	}
	return total
}
