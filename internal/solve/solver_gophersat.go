package solve

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/crillab/gophersat/maxsat"
	"github.com/crillab/gophersat/solver"

	"timegrid/internal/model"
)

// NewMaxSatSolver returns the in-process exact backend built on gophersat.
// The model travels through its WCNF encoding; intermediate models are
// collected while the search runs, so the best one found so far is still
// returned when the budget elapses first.
func NewMaxSatSolver() Solver {
	return &maxSatSolver{}
}

type maxSatSolver struct{}

func (maxSat *maxSatSolver) Solve(m *model.Model, budget time.Duration) (Solution, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}

	if m.NumVars == 0 {
		return Solution{Status: StatusOptimal, Values: []bool{}}, nil
	}

	s, err := maxsat.ParseWCNF(strings.NewReader(EncodeWCNF(m)))
	if err != nil {
		return Solution{}, fmt.Errorf("cannot parse wcnf encoding: %w", err)
	}

	stop := make(chan struct{})
	results := make(chan solver.Result)
	done := make(chan solver.Result, 1)
	go func() { done <- s.Optimal(results, stop) }()

	// The minimize loop may never read stop, so every intermediate model is
	// recorded here. Draining continues after Solve returns until the search
	// closes the channel.
	var mutex sync.Mutex
	var best []bool
	go func() {
		for result := range results {
			if result.Status == solver.Sat {
				mutex.Lock()
				best = append([]bool(nil), result.Model...)
				mutex.Unlock()
			}
		}
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case final := <-done:
		switch final.Status {
		case solver.Unsat:
			return Solution{Status: StatusInfeasible}, nil
		case solver.Sat:
			values := maxSat.values(final.Model, m.NumVars)
			return Solution{Status: StatusOptimal, Values: values, Objective: m.ObjectiveValue(values)}, nil
		default:
			return maxSat.bestSoFar(m, &mutex, &best), nil
		}
	case <-timer.C:
		close(stop)
		return maxSat.bestSoFar(m, &mutex, &best), nil
	}
}

func (maxSat *maxSatSolver) bestSoFar(m *model.Model, mutex *sync.Mutex, best *[]bool) Solution {
	mutex.Lock()
	snapshot := *best
	mutex.Unlock()

	if snapshot == nil {
		return Solution{Status: StatusUnknown}
	}
	values := maxSat.values(snapshot, m.NumVars)
	return Solution{Status: StatusFeasible, Values: values, Objective: m.ObjectiveValue(values)}
}

func (maxSat *maxSatSolver) values(result []bool, numVars uint64) []bool {
	values := make([]bool, numVars)
	for id := uint64(1); id <= numVars; id++ {
		values[id-1] = id-1 < uint64(len(result)) && result[id-1]
	}
	return values
}
