package solve

import (
	"time"

	"timegrid/internal/model"
)

// DefaultBudget caps a single solve. Backends exhaust it and return the best
// assignment found so far rather than keep searching.
const DefaultBudget = 600 * time.Second

// Status of a solve attempt.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible // time-bounded: the objective may be suboptimal
	StatusInfeasible
)

func (status Status) String() string {
	switch status {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Solution carries the solver verdict and, for optimal/feasible outcomes, a
// complete 0/1 assignment indexed by variable id - 1 that satisfies every
// hard constraint, plus the achieved objective value.
type Solution struct {
	Status    Status
	Values    []bool
	Objective int64
}

// Usable reports whether the solution carries an assignment worth extracting.
func (solution Solution) Usable() bool {
	return solution.Status == StatusOptimal || solution.Status == StatusFeasible
}

// Solver finds an assignment for a built model within a wall-clock budget.
// Returned assignments always satisfy the model's hard constraints; running
// out of budget may only cost objective quality, never correctness.
// Non-positive budgets fall back to DefaultBudget.
type Solver interface {
	Solve(m *model.Model, budget time.Duration) (Solution, error)
}
