package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hritwiksinha/PianoHands/pkg/logger"
	"github.com/hritwiksinha/PianoHands/pkg/models"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands"
	"github.com/hritwiksinha/PianoHands/pkg/pianohands/theory"
	"github.com/hritwiksinha/PianoHands/pkg/utils"
)

// Global flags
var (
	dbPath     string
	difficulty string
)

func init() {
	flag.StringVar(&dbPath, "db", getEnvOrDefault("PIANOHANDS_DB_PATH", "pianohands.sqlite3"), "Path to the SQLite database file")
	flag.StringVar(&difficulty, "difficulty", "intermediate", "Difficulty profile: beginner, intermediate or advanced")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func createService() (pianohands.Service, error) {
	return pianohands.NewService(
		pianohands.WithDBPath(dbPath),
		pianohands.WithDifficulty(models.ParseDifficulty(difficulty)),
	)
}

func main() {
	log := logger.GetLogger()

	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	// Subcommand handlers read their arguments after the global flags.
	os.Args = append([]string{os.Args[0]}, args...)

	command := args[0]
	log.Infof("Executing command: %s", command)

	switch command {
	case "analyze":
		handleAnalyze()
	case "list":
		handleList()
	case "show":
		handleShow()
	case "delete":
		handleDelete()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAnalyze() {
	log := logger.GetLogger()

	args := os.Args[2:]
	var scorePath string
	var flagArgs []string
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") && scorePath == "" {
			scorePath = arg
		} else {
			flagArgs = append(flagArgs, args[i:]...)
			break
		}
	}

	analyzeCmd := flag.NewFlagSet("analyze", flag.ExitOnError)
	title := analyzeCmd.String("title", "", "Title to save the analysis under (omit to skip saving)")
	diff := analyzeCmd.String("difficulty", difficulty, "Difficulty profile")
	analyzeCmd.Parse(flagArgs)

	if scorePath == "" {
		fmt.Println("Usage: pianohands analyze <score.mid> [--title <title>] [--difficulty <level>]")
		os.Exit(1)
	}

	svc, err := createService()
	if err != nil {
		fmt.Printf("Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result, notes, err := svc.AnalyzeFile(ctx, scorePath, models.ParseDifficulty(*diff))
	if err != nil {
		fmt.Printf("Failed to analyze score: %v\n", err)
		log.Errorf("AnalyzeFile failed: %v", err)
		os.Exit(1)
	}

	printResult(result, notes)

	if *title != "" {
		id, err := svc.SaveAnalysis(result, notes, *title)
		if err != nil {
			fmt.Printf("Failed to save analysis: %v\n", err)
			log.Errorf("SaveAnalysis failed: %v", err)
			os.Exit(1)
		}
		fmt.Printf("\nSaved analysis %s\n", id)
	}
}

func printResult(result *models.AnalysisResult, notes []models.Note) {
	fmt.Printf("\nFingering (%s, total cost %d):\n\n", result.Difficulty, result.Solution.TotalCost)
	for i, n := range notes {
		reasons := ""
		if len(result.Solution.Reasons[i]) > 0 {
			reasons = "  " + strings.Join(result.Solution.Reasons[i], "; ")
		}
		fmt.Printf("%4d  %-4s %s  finger %d%s\n",
			i, theory.NoteName(n.Pitch), n.Hand, result.Solution.Fingers[i], reasons)
	}

	fmt.Printf("\nSegments:\n")
	for _, seg := range result.Segments {
		fmt.Printf("  %s [%d..%d] %s (%.2f)\n",
			seg.Hand, seg.StartIndex, seg.EndIndex, seg.Type, seg.Confidence)
	}
}

func handleList() {
	log := logger.GetLogger()

	svc, err := createService()
	if err != nil {
		fmt.Printf("Failed to create service: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	analyses, err := svc.ListAnalyses()
	if err != nil {
		fmt.Printf("Failed to list analyses: %v\n", err)
		log.Errorf("ListAnalyses failed: %v", err)
		os.Exit(1)
	}

	if len(analyses) == 0 {
		fmt.Println("No analyses in database")
		return
	}

	fmt.Printf("Found %d analyses:\n\n", len(analyses))
	for i, a := range analyses {
		fmt.Printf("%d. %q (%s, %d notes, cost %d)\n   ID: %s\n",
			i+1, a.Title, a.Difficulty, a.NoteCount, a.TotalCost, a.ID)
	}
}

func handleShow() {
	log := logger.GetLogger()

	if len(os.Args) < 3 {
		fmt.Println("Usage: pianohands show <analysis_id>")
		os.Exit(1)
	}
	id := os.Args[2]

	svc, err := createService()
	if err != nil {
		fmt.Printf("Failed to create service: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	a, err := svc.GetAnalysis(id)
	if err != nil {
		fmt.Printf("Analysis not found: %v\n", err)
		log.Warnf("GetAnalysis failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("%q (%s, %d notes, cost %d)\n\n", a.Title, a.Difficulty, a.NoteCount, a.TotalCost)
	tagCounts := map[string]int{}
	for _, f := range a.Fingerings {
		fmt.Printf("%4d  %-4s %s  finger %d\n", f.NoteIndex, theory.NoteName(f.Pitch), f.Hand, f.Finger)
		for _, r := range f.Reasons {
			tagCounts[r]++
		}
	}

	if len(tagCounts) > 0 {
		fmt.Printf("\nRule activity:\n")
		for _, tag := range utils.SortedKeys(tagCounts) {
			fmt.Printf("  %4d  %s\n", tagCounts[tag], tag)
		}
	}
}

func handleDelete() {
	log := logger.GetLogger()

	if len(os.Args) < 3 {
		fmt.Println("Usage: pianohands delete <analysis_id>")
		os.Exit(1)
	}
	id := os.Args[2]

	svc, err := createService()
	if err != nil {
		fmt.Printf("Failed to create service: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	if err := svc.DeleteAnalysis(id); err != nil {
		fmt.Printf("Failed to delete analysis: %v\n", err)
		log.Errorf("DeleteAnalysis failed: %v", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted analysis %s\n", id)
}

func printUsage() {
	fmt.Println("PianoHands - Piano Fingering CLI")
	fmt.Println("\nGlobal Options:")
	fmt.Println("  --db <path>           Path to SQLite database (env: PIANOHANDS_DB_PATH, default: pianohands.sqlite3)")
	fmt.Println("  --difficulty <level>  beginner, intermediate or advanced (default: intermediate)")
	fmt.Println("\nUsage:")
	fmt.Println("  pianohands analyze <score.mid> [--title <title>] [--difficulty <level>]")
	fmt.Println("  pianohands list")
	fmt.Println("  pianohands show <analysis_id>")
	fmt.Println("  pianohands delete <analysis_id>")
}
