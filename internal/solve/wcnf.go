package solve

import (
	"fmt"
	"strings"

	"timegrid/internal/model"
)

// EncodeWCNF renders the model as a weighted partial MaxSAT instance in
// DIMACS WCNF text form. Hard clauses carry the top weight: pairwise
// mutual exclusions for every at-most-one group and the two directions of
// each linking equivalence. Every objective term becomes a weighted soft unit
// clause, so maximizing the objective is minimizing the falsified soft
// weight.
func EncodeWCNF(m *model.Model) string {
	hard := make([][]int64, 0, len(m.AtMostOne)+len(m.Equalities))

	for _, group := range m.AtMostOne {
		for i := 0; i < len(group)-1; i++ {
			for j := i + 1; j < len(group); j++ {
				hard = append(hard, []int64{-int64(group[i]), -int64(group[j])})
			}
		}
	}

	for _, equality := range m.Equalities {
		// link -> some assignment holds; an empty equality forces the link
		// false through the resulting unit clause.
		implied := make([]int64, 0, len(equality.Vars)+1)
		implied = append(implied, -int64(equality.Link))
		for _, id := range equality.Vars {
			implied = append(implied, int64(id))
			// assignment -> link
			hard = append(hard, []int64{-int64(id), int64(equality.Link)})
		}
		hard = append(hard, implied)
	}

	top := int64(1)
	for _, term := range m.Objective {
		top += term.Weight
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "p wcnf %d %d %d\n", m.NumVars, len(hard)+len(m.Objective), top)
	for _, clause := range hard {
		fmt.Fprintf(&builder, "%d", top)
		for _, literal := range clause {
			fmt.Fprintf(&builder, " %d", literal)
		}
		builder.WriteString(" 0\n")
	}
	for _, term := range m.Objective {
		fmt.Fprintf(&builder, "%d %d 0\n", term.Weight, term.Var)
	}
	return builder.String()
}

// TotalSoftWeight sums the objective weights; the objective achieved by a
// MaxSAT solution is this total minus the solver's reported cost.
func TotalSoftWeight(m *model.Model) int64 {
	var total int64
	for _, term := range m.Objective {
		total += term.Weight
	}
	return total
}
