package model

// Verify reports whether a raw assignment satisfies every materialized
// constraint group and linking equality of the model. Solvers are trusted to
// return only constraint-satisfying assignments; this re-checks that trust
// before extraction.
func Verify(m *Model, values []bool) bool {
	if uint64(len(values)) < m.NumVars {
		return false
	}

	for _, group := range m.AtMostOne {
		count := 0
		for _, id := range group {
			if values[id-1] {
				count++
			}
		}
		if count > 1 {
			return false
		}
	}

	for _, equality := range m.Equalities {
		sum := 0
		for _, id := range equality.Vars {
			if values[id-1] {
				sum++
			}
		}
		linked := 0
		if values[equality.Link-1] {
			linked = 1
		}
		if sum != linked {
			return false
		}
	}

	return true
}
