package solve

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"timegrid/internal/model"
)

const openWboPath = "open-wbo"

// NewOpenWboSolver returns a backend that shells out to the open-wbo MaxSAT
// solver binary. The encoding travels through a temporary WCNF file; the
// budget is enforced by killing the process when it elapses.
func NewOpenWboSolver() Solver {
	return &openWboSolver{}
}

type openWboSolver struct{}

func (openWbo *openWboSolver) Solve(m *model.Model, budget time.Duration) (Solution, error) {
	if budget <= 0 {
		budget = DefaultBudget
	}

	file, err := os.CreateTemp("", "timetable-*.wcnf")
	if err != nil {
		return Solution{}, fmt.Errorf("cannot create wcnf file: %w", err)
	}
	defer os.Remove(file.Name())

	if _, err := file.WriteString(EncodeWCNF(m)); err != nil {
		file.Close()
		return Solution{}, fmt.Errorf("cannot write wcnf file: %w", err)
	}
	if err := file.Close(); err != nil {
		return Solution{}, fmt.Errorf("cannot close wcnf file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	cmd := exec.CommandContext(ctx, openWboPath, file.Name())

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	status, values, err := parseMaxSatOutput(stdOut.String(), m.NumVars)
	if err != nil {
		return Solution{}, err
	}
	// MaxSAT solvers exit nonzero for satisfiable/unsatisfiable verdicts, so
	// the run error only matters when no verdict was printed.
	if status == StatusUnknown && runErr != nil && ctx.Err() == nil {
		return Solution{}, fmt.Errorf("an error occurred during open-wbo execution: %v : %v", runErr, stderr.String())
	}

	solution := Solution{Status: status}
	if solution.Usable() {
		solution.Values = values
		solution.Objective = m.ObjectiveValue(values)
	}
	return solution, nil
}

func parseMaxSatOutput(output string, numVars uint64) (Status, []bool, error) {
	status := StatusUnknown
	values := make([]bool, numVars)

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "s "):
			switch strings.TrimSpace(line[2:]) {
			case "OPTIMUM FOUND":
				status = StatusOptimal
			case "SATISFIABLE":
				status = StatusFeasible
			case "UNSATISFIABLE":
				status = StatusInfeasible
			}
		case strings.HasPrefix(line, "v "):
			for _, token := range strings.Fields(line[2:]) {
				literal, err := strconv.ParseInt(token, 10, 64)
				if err != nil {
					return StatusUnknown, nil, fmt.Errorf("invalid literal in solver output: %v", err)
				}
				if literal > 0 && uint64(literal) <= numVars {
					values[literal-1] = true
				}
			}
		}
	}

	return status, values, nil
}
