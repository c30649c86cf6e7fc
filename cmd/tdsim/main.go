// Command tdsim runs a headless simulation of one attack wave against a
// fixed tower layout and prints a summary of what happened.
//
// Configuration is flag.*-based, with verbose-gated fmt.Printf narration of
// each stage and an optional debug SVG snapshot written out at the end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dshills/tdsim/pkg/contracts"
	"github.com/dshills/tdsim/pkg/layout"
	"github.com/dshills/tdsim/pkg/sim"
	"github.com/dshills/tdsim/pkg/tdlog"
	"github.com/dshills/tdsim/pkg/wavegen"
	"github.com/dshills/tdsim/pkg/world"
)

const version = "0.1.0"

var (
	seedFlag         = flag.Uint64("seed", 1, "Deterministic master seed")
	cols             = flag.Int("cols", 10, "Tile grid columns")
	rows             = flag.Int("rows", 10, "Tile grid rows")
	cellsPerTile     = flag.Int("cells-per-tile", 4, "Cells per tile edge")
	difficulty       = flag.Float64("difficulty", 1.0, "Wave difficulty scalar")
	ticks            = flag.Int("ticks", 200, "Number of ticks to simulate")
	tickMs           = flag.Int64("tick-ms", 100, "Milliseconds advanced per tick")
	towerCol         = flag.Int("tower-col", -1, "Column to place one Basic tower at (-1 = skip)")
	towerRow         = flag.Int("tower-row", -1, "Row to place one Basic tower at (-1 = skip)")
	archetypeDir     = flag.String("archetypes-dir", "", "Directory containing <name>.yml archetype packs")
	archetypePack    = flag.String("archetypes", "", "Archetype pack name to load from -archetypes-dir")
	svgOut           = flag.String("debug-svg", "", "Path to write a debug SVG snapshot after the run (empty = skip)")
	verbose          = flag.Bool("verbose", false, "Enable verbose output")
	versionF         = flag.Bool("version", false, "Print version and exit")
	help             = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("tdsim version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	logger := tdlog.Discard()
	if *verbose {
		logger = tdlog.New(slog.LevelInfo)
	}
	logger = tdlog.WithSeed(logger, *seedFlag)

	w := world.New(contracts.DefaultTuning(), *seedFlag)
	d := sim.New(w)

	d.Submit(contracts.ConfigureTileGrid{Cols: *cols, Rows: *rows, CellsPerTile: *cellsPerTile})
	logger.Info("configured tile grid", "cols", *cols, "rows", *rows, "cells_per_tile", *cellsPerTile)

	if *towerCol >= 0 && *towerRow >= 0 {
		events := d.Submit(contracts.PlaceTower{Kind: contracts.Basic, Origin: contracts.Cell{Col: *towerCol, Row: *towerRow}})
		for _, e := range events {
			if r, ok := e.(contracts.TowerPlacementRejected); ok {
				logger.Warn("tower placement rejected", "reason", r.Reason)
			}
		}
	}

	d.Submit(contracts.SetPlayMode{Mode: contracts.Attack})

	const waveID = contracts.WaveID(1)
	d.Submit(contracts.GenerateAttackPlan{WaveID: waveID, Difficulty: *difficulty})
	plan, ok := w.AttackPlan(waveID)
	if !ok {
		return fmt.Errorf("attack plan %d was not generated", waveID)
	}
	logger.Info("generated attack plan", "count", plan.Count, "species", len(plan.Species), "pressure", plan.Pressure)

	var archetypes *wavegen.ArchetypePack
	if *archetypeDir != "" && *archetypePack != "" {
		pack, err := wavegen.NewArchetypeLoader(*archetypeDir).Load(*archetypePack)
		if err != nil {
			return fmt.Errorf("loading archetype pack: %w", err)
		}
		archetypes = pack
	}

	d.Submit(contracts.StartWave{Difficulty: *difficulty})

	gapStart, _ := w.ExitGapColumns()
	spawnCell := contracts.Cell{Col: gapStart, Row: 0}

	var elapsedMs float64
	nextSpawn := 0
	var spawned, exited, died, fired int

	for i := 0; i < *ticks; i++ {
		for nextSpawn < len(plan.Schedule) && plan.Schedule[nextSpawn].TimeMs <= elapsedMs {
			rec := plan.Schedule[nextSpawn]
			species := plan.Species[rec.SpeciesID]
			events := d.Submit(contracts.SpawnBug{
				Species: rec.SpeciesID,
				Health:  int64(species.HPMultiplier * 10),
				StepMs:  int64(1000 / maxFloat(species.SpeedMultiplier, 0.1)),
				Cell:    spawnCell,
				Tint:    archetypes.TintFor(rec.SpeciesID),
			})
			for _, e := range events {
				if _, ok := e.(contracts.BugSpawned); ok {
					spawned++
				}
			}
			nextSpawn++
		}

		events, err := d.Advance(ctx, *tickMs)
		if err != nil {
			return fmt.Errorf("advance: %w", err)
		}
		elapsedMs += float64(*tickMs)

		for _, e := range events {
			switch e.(type) {
			case contracts.BugExited:
				exited++
			case contracts.BugDied:
				died++
			case contracts.ProjectileFired:
				fired++
			}
		}
	}

	report := w.Analytics()
	fmt.Printf("Ran %d ticks (seed=%d, difficulty=%.2f)\n", *ticks, *seedFlag, *difficulty)
	fmt.Printf("  Spawned: %d  Exited: %d  Died: %d  Shots fired: %d\n", spawned, exited, died, fired)
	fmt.Printf("  Gold: %d  Difficulty tier: %d\n", w.Gold(), w.DifficultyTier())
	fmt.Printf("  Analytics: towers=%d coverage=%.2f firing_ready=%.2f shortest_path=%d total_dps=%.1f\n",
		report.TowerCount, report.CoverageMean, report.FiringCompletePct, report.ShortestPathLength, report.TotalDPS)

	if *svgOut != "" {
		opts := layout.DefaultDebugSVGOptions()
		opts.Title = fmt.Sprintf("tdsim (seed=%d)", *seedFlag)
		data := layout.RenderDebugSVG(w.OccupancyView(), opts)
		if err := os.WriteFile(*svgOut, data, 0o644); err != nil {
			return fmt.Errorf("writing debug SVG: %w", err)
		}
		if *verbose {
			fmt.Printf("  Wrote debug SVG to %s\n", *svgOut)
		}
	}

	return nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func printHelp() {
	fmt.Printf("tdsim version %s\n\n", version)
	fmt.Println("A headless driver for the tower-defense simulation kernel.")
	fmt.Println("\nUsage:")
	fmt.Println("  tdsim [options]")
	fmt.Println("\nOptions:")
	flag.PrintDefaults()
	fmt.Println("\nExamples:")
	fmt.Println("  # Run a default wave against an empty grid")
	fmt.Println("  tdsim -seed 42 -difficulty 2.0")
	fmt.Println("\n  # Place one tower and dump a debug SVG snapshot afterward")
	fmt.Println("  tdsim -tower-col 20 -tower-row 20 -debug-svg out.svg -verbose")
}
