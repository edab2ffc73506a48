package model

import "fmt"

// Default grid shape: six teaching days of five periods per week, earlier
// periods preferred, the first two periods counted as morning.
const (
	DefaultDays           uint64 = 6
	DefaultPeriods        uint64 = 5
	DefaultMorningPeriods uint64 = 2
)

func DefaultPeriodWeights() []int64 {
	return []int64{5, 4, 3, 2, 1}
}

// Grid is the fixed weekly slot structure, identical for every class. It is
// set at build time and never re-derived.
type Grid struct {
	Days           uint64
	Periods        uint64
	PeriodWeights  []int64 // one per period, strictly descending
	MorningPeriods uint64  // leading periods counted as "morning" in statistics
}

func DefaultGrid() Grid {
	return Grid{
		Days:           DefaultDays,
		Periods:        DefaultPeriods,
		PeriodWeights:  DefaultPeriodWeights(),
		MorningPeriods: DefaultMorningPeriods,
	}
}

func (grid Grid) Validate() error {
	if grid.Days == 0 || grid.Periods == 0 {
		return fmt.Errorf("grid must have at least one day and one period: %vx%v", grid.Days, grid.Periods)
	}
	if uint64(len(grid.PeriodWeights)) != grid.Periods {
		return fmt.Errorf("grid must carry one weight per period: %v weights for %v periods", len(grid.PeriodWeights), grid.Periods)
	}
	for i, weight := range grid.PeriodWeights {
		if weight < 1 {
			return fmt.Errorf("period weights must be positive: %v", grid.PeriodWeights)
		}
		if i > 0 && weight >= grid.PeriodWeights[i-1] {
			return fmt.Errorf("period weights must strictly decrease: %v", grid.PeriodWeights)
		}
	}
	if grid.MorningPeriods > grid.Periods {
		return fmt.Errorf("morning cannot span more than the %v periods: %v", grid.Periods, grid.MorningPeriods)
	}
	return nil
}
