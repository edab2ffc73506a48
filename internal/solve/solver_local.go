package solve

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"timegrid/internal/model"
)

// NewLocalSolver returns the self-contained heuristic backend: deterministic
// greedy construction followed by an anytime improvement loop. Every move
// keeps the hard constraints satisfied and only ever raises the objective, so
// a larger budget can never produce a worse schedule. It cannot prove
// optimality and therefore reports Feasible for any nonempty model.
func NewLocalSolver() Solver {
	return &localSolver{}
}

type localSolver struct {
	maxPasses int // improvement passes cap; 0 means until fixed point or budget
}

func (solver *localSolver) Solve(m *model.Model, budget time.Duration) (Solution, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}
	deadline := time.Now().Add(budget)

	state := newLocalState(m)
	state.construct()

	passes := 0
	for time.Now().Before(deadline) {
		improved := state.improvePeriods()
		if state.placeUnscheduled() {
			improved = true
		}
		passes++
		if !improved || (solver.maxPasses > 0 && passes >= solver.maxPasses) {
			break
		}
	}

	values := state.values()
	status := StatusFeasible
	if m.NumVars == 0 {
		status = StatusOptimal
	}
	return Solution{Status: status, Values: values, Objective: m.ObjectiveValue(values)}, nil
}

// occupancy is one slot of a resource dimension: a class, teacher or room
// busy at a given day and period.
type occupancy struct {
	owner  uint64
	day    uint64
	period uint64
}

type obligation struct {
	link       uint64
	weight     int64
	candidates []uint64 // assignment var ids, best objective weight first
}

type localState struct {
	m       *model.Model
	weights []int64 // objective weight per variable, indexed by id - 1

	obligations []obligation
	candidates  map[uint64][]uint64 // link id -> its candidate list
	varLink     map[uint64]uint64   // assignment var id -> link id

	classBusy   map[occupancy]uint64 // slot -> occupying assignment var
	teacherBusy map[occupancy]uint64
	roomBusy    map[occupancy]uint64
	chosen      map[uint64]uint64 // link id -> chosen assignment var
}

func newLocalState(m *model.Model) *localState {
	state := &localState{
		m:           m,
		weights:     make([]int64, m.NumVars),
		candidates:  make(map[uint64][]uint64),
		varLink:     make(map[uint64]uint64),
		classBusy:   make(map[occupancy]uint64),
		teacherBusy: make(map[occupancy]uint64),
		roomBusy:    make(map[occupancy]uint64),
		chosen:      make(map[uint64]uint64),
	}

	for _, term := range m.Objective {
		state.weights[term.Var-1] += term.Weight
	}

	for _, equality := range m.Equalities {
		candidates := slices.Clone(equality.Vars)
		slices.SortFunc(candidates, func(a, b uint64) int {
			if state.weights[a-1] != state.weights[b-1] {
				return int(state.weights[b-1] - state.weights[a-1])
			}
			return int(a) - int(b)
		})
		state.candidates[equality.Link] = candidates

		for _, id := range equality.Vars {
			state.varLink[id] = equality.Link
		}

		state.obligations = append(state.obligations, obligation{
			link:       equality.Link,
			weight:     state.weights[equality.Link-1],
			candidates: candidates,
		})
	}

	// Heaviest obligations first; ties broken by link id so runs are
	// reproducible.
	slices.SortFunc(state.obligations, func(a, b obligation) int {
		if a.weight != b.weight {
			return int(b.weight - a.weight)
		}
		return int(a.link) - int(b.link)
	})

	return state
}

func (state *localState) slots(id uint64) (class, teacher, room occupancy) {
	key := state.m.Keys[id-1]
	return occupancy{key.Class, key.Day, key.Period},
		occupancy{key.Teacher, key.Day, key.Period},
		occupancy{key.Room, key.Day, key.Period}
}

func (state *localState) free(id uint64) bool {
	class, teacher, room := state.slots(id)
	_, classTaken := state.classBusy[class]
	_, teacherTaken := state.teacherBusy[teacher]
	_, roomTaken := state.roomBusy[room]
	return !classTaken && !teacherTaken && !roomTaken
}

func (state *localState) place(link, id uint64) {
	class, teacher, room := state.slots(id)
	state.classBusy[class] = id
	state.teacherBusy[teacher] = id
	state.roomBusy[room] = id
	state.chosen[link] = id
}

func (state *localState) unplace(link uint64) {
	id := state.chosen[link]
	class, teacher, room := state.slots(id)
	delete(state.classBusy, class)
	delete(state.teacherBusy, teacher)
	delete(state.roomBusy, room)
	delete(state.chosen, link)
}

// construct greedily places every obligation into its best free candidate.
func (state *localState) construct() {
	for _, ob := range state.obligations {
		for _, id := range ob.candidates {
			if state.free(id) {
				state.place(ob.link, id)
				break
			}
		}
	}
}

// improvePeriods relocates scheduled assignments to strictly better slots.
func (state *localState) improvePeriods() bool {
	improved := false
	for _, ob := range state.obligations {
		current, scheduled := state.chosen[ob.link]
		if !scheduled {
			continue
		}

		for _, id := range ob.candidates {
			if state.weights[id-1] <= state.weights[current-1] {
				break // candidates are sorted, nothing better remains
			}
			state.unplace(ob.link)
			if state.free(id) {
				state.place(ob.link, id)
				improved = true
				break
			}
			state.place(ob.link, current)
		}
	}
	return improved
}

// placeUnscheduled tries direct placement of uncovered obligations, then a
// single ejection: relocate the lone blocker of a candidate slot and take its
// place. The coverage reward always outweighs any period-weight loss of the
// relocated assignment.
func (state *localState) placeUnscheduled() bool {
	improved := false
	for _, ob := range state.obligations {
		if _, scheduled := state.chosen[ob.link]; scheduled {
			continue
		}

		placed := false
		for _, id := range ob.candidates {
			if state.free(id) {
				state.place(ob.link, id)
				placed = true
				break
			}
		}
		if placed {
			improved = true
			continue
		}

		for _, id := range ob.candidates {
			if state.eject(ob.link, id) {
				improved = true
				break
			}
		}
	}
	return improved
}

func (state *localState) blockers(id uint64) []uint64 {
	class, teacher, room := state.slots(id)
	blocking := make([]uint64, 0, 3)
	if occupant, taken := state.classBusy[class]; taken {
		blocking = append(blocking, occupant)
	}
	if occupant, taken := state.teacherBusy[teacher]; taken {
		blocking = append(blocking, occupant)
	}
	if occupant, taken := state.roomBusy[room]; taken {
		blocking = append(blocking, occupant)
	}
	return lo.Uniq(blocking)
}

func (state *localState) eject(link, id uint64) bool {
	blocking := state.blockers(id)
	if len(blocking) != 1 {
		return false
	}

	blockedLink := state.varLink[blocking[0]]
	original := state.chosen[blockedLink]
	state.unplace(blockedLink)
	state.place(link, id)

	for _, alternative := range state.candidates[blockedLink] {
		if alternative != original && state.free(alternative) {
			state.place(blockedLink, alternative)
			return true
		}
	}

	state.unplace(link)
	state.place(blockedLink, original)
	return false
}

func (state *localState) values() []bool {
	values := make([]bool, state.m.NumVars)
	for link, id := range state.chosen {
		values[id-1] = true
		values[link-1] = true
	}
	return values
}
