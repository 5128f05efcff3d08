// Command roster generates the booth roster for one event from a booths
// CSV and one or more signup CSVs, writing the console summary, the two
// CSV rosters, and the two printable PDF rosters.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/arnavshah/booth-roster-go/pkg/csvio"
	"github.com/arnavshah/booth-roster-go/pkg/logger"
	"github.com/arnavshah/booth-roster-go/pkg/registry"
	"github.com/arnavshah/booth-roster-go/pkg/report"
	"github.com/arnavshah/booth-roster-go/pkg/scheduler"
)

func main() {
	_ = godotenv.Load(".env")

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: roster <booths_csv> <volunteer_csv1> [<volunteer_csv2> ...]")
		os.Exit(1)
	}

	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "volunteer_roster.log"
	}
	log, err := logger.New(logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: "console",
		File:   logFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	boothsPath := os.Args[1]
	signupPaths := os.Args[2:]

	bf, err := os.Open(boothsPath)
	if err != nil {
		fatal(log, "booth file not found", err)
	}
	booths, err := csvio.LoadBooths(bf)
	bf.Close()
	if err != nil {
		fatal(log, "could not parse booths file", err)
	}
	log.Info("loaded booths", zap.Int("count", len(booths)), zap.String("file", boothsPath))

	reg := registry.New(log)
	for _, path := range signupPaths {
		sf, err := os.Open(path)
		if err != nil {
			fatal(log, "signup file not found", err)
		}
		rows, err := csvio.ReadSignups(sf)
		sf.Close()
		if err != nil {
			fatal(log, "could not parse signup file", err)
		}
		rejected := reg.Ingest(path, rows)
		log.Info("ingested signup file",
			zap.String("file", path),
			zap.Int("rows", len(rows)),
			zap.Int("rejected", len(rejected)))
	}
	volunteers := reg.Finalize()

	s, err := scheduler.New(volunteers, booths, log)
	if err != nil {
		fatal(log, "invalid booth configuration", err)
	}
	res := s.Assign()
	roster := report.NewRoster(booths, volunteers, res)

	renderers := []report.Renderer{
		&report.ConsoleRenderer{Out: os.Stdout},
		&report.CSVRenderer{BoothPath: "roster.csv", VolunteerPath: "volunteer_roster.csv"},
		&report.PDFRenderer{BoothPath: "booth_roster.pdf", VolunteerPath: "volunteer_roster.pdf"},
	}
	for _, r := range renderers {
		if err := r.Render(roster); err != nil {
			fatal(log, "could not render roster", err)
		}
	}

	fmt.Printf("Coverage: %.1f%% of booth slots filled\n", scheduler.CoverageScore(res.Assignments, booths))
	fmt.Println("Roster written to roster.csv, volunteer_roster.csv, booth_roster.pdf, volunteer_roster.pdf")
	log.Info("roster complete",
		zap.Int("volunteers", reg.UniqueCount()),
		zap.Int("assignments", len(res.Assignments)),
		zap.Int("unfilled_slots", len(roster.Unfilled)))
}

func fatal(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
