package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"timegrid/internal/catalog"
	"timegrid/internal/config"
	"timegrid/internal/logging"
	"timegrid/internal/model"
	"timegrid/internal/report"
	"timegrid/internal/solve"
)

var (
	validSolvers = []string{"local", "maxsat", "openwbo"}
	solvers      = map[string]func() solve.Solver{
		"local":   solve.NewLocalSolver,
		"maxsat":  solve.NewMaxSatSolver,
		"openwbo": solve.NewOpenWboSolver,
	}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	// Define arguments
	subjectsPtr := flag.String("subjects", cfg.SubjectsFile, "Path to the subjects json file")
	roomsPtr := flag.String("rooms", cfg.RoomsFile, "Path to the rooms json file")
	solverPtr := flag.String("solver", cfg.Solver, "Solver to use. Allowed values are: \"local\", \"maxsat\", \"openwbo\", where \"local\" is the default")
	pdfPtr := flag.String("pdf", "", "Path to the pdf file where the timetables will be written; if empty, no pdf is produced")
	flag.Parse()
	solverStr := strings.ToLower(*solverPtr)

	// Validate arguments
	if !slices.Contains(validSolvers, solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	// Extract input
	curriculum, err := catalog.CurriculumFromJson(*subjectsPtr)
	if err != nil {
		logger.Fatal("cannot parse subjects file", zap.Error(err))
	}
	inventory, err := catalog.RoomsFromJson(*roomsPtr)
	if err != nil {
		logger.Fatal("cannot parse rooms file", zap.Error(err))
	}

	cat := catalog.Build(curriculum, inventory)
	logger.Info("catalogue built",
		zap.Int("classes", len(cat.Classes)),
		zap.Int("courses", len(cat.Courses)),
		zap.Int("rooms", len(cat.Rooms)),
		zap.Int("teachers", len(cat.Teachers)),
	)

	// Build the constraint model
	grid := cfg.Grid()
	m, err := model.NewBuilder().Build(cat, grid)
	if err != nil {
		logger.Fatal("cannot build model", zap.Error(err))
	}
	logger.Info("model built",
		zap.Uint64("variables", m.NumVars),
		zap.Int("atMostOneGroups", len(m.AtMostOne)),
	)

	// Solve
	solution, err := solvers[solverStr]().Solve(m, cfg.SolverBudget)
	if err != nil {
		logger.Fatal("an error occurred during solving", zap.Error(err))
	}
	logger.Info("solve finished",
		zap.Stringer("status", solution.Status),
		zap.Int64("objective", solution.Objective),
	)

	diagnostics := model.NewAnalyzer().Analyze(cat, grid)

	if !solution.Usable() {
		fmt.Print(report.RenderDiagnostics(diagnostics, cat))
		os.Exit(20)
	}

	// Verify solution correctness
	if !model.Verify(m, solution.Values) {
		logger.Error("solution violates model constraints")
		os.Exit(15)
	}

	timetable, stats, err := model.NewExtractor().Extract(m, solution.Values, cat, grid)
	if err != nil {
		logger.Error("cannot extract timetable", zap.Error(err))
		os.Exit(15)
	}

	fmt.Print(report.RenderTimetable(timetable, cat))
	fmt.Print(report.RenderStats(stats, cat))
	if len(stats.Unscheduled) > 0 {
		fmt.Print(report.RenderDiagnostics(diagnostics, cat))
	}

	if *pdfPtr != "" {
		document, err := report.PDF(timetable, cat, "Weekly Timetables")
		if err != nil {
			logger.Fatal("cannot render pdf", zap.Error(err))
		}
		if err := os.WriteFile(*pdfPtr, document, 0666); err != nil {
			logger.Fatal("cannot write pdf file", zap.Error(err))
		}
		logger.Info("pdf written", zap.String("path", *pdfPtr))
	}

	os.Exit(10)
}
