// Command firscript is a driver demonstrating the external bar-loop
// contract of spec.md §6: register scripts, build the main script's
// execution context, run setup once, then alternate mutating the data
// namespace with run_process across a CSV-sourced bar series. This is
// driver glue, not core — the way the teacher's cmd/backtest drives its
// trading engine.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/JungleDome/FirScript/internal/config"
	"github.com/JungleDome/FirScript/internal/facade"
	"github.com/JungleDome/FirScript/internal/logger"
	"github.com/JungleDome/FirScript/internal/script"
	"github.com/JungleDome/FirScript/pkg/namespaces"
	"github.com/JungleDome/FirScript/pkg/namespaces/datacsv"
)

func runAction(_ context.Context, cmd *cli.Command) error {
	log := logger.Get()

	scriptPath := cmd.String("script")
	dataPath := cmd.String("data")

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	bars, err := datacsv.LoadFile(dataPath)
	if err != nil {
		return fmt.Errorf("load bar data: %w", err)
	}

	var inputOverrides map[string]any

	var columnMapping map[string]string

	if configPath := cmd.String("config"); configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		inputOverrides = cfg.InputOverrides
		columnMapping = cfg.ColumnMapping
	}

	eng := facade.New()
	eng.Registry.RegisterDefaults(namespaces.Default, inputOverrides, columnMapping)

	if err := eng.AddSource(scriptPath, string(source), script.KindStrategy, true); err != nil {
		return fmt.Errorf("register script: %w", err)
	}

	ctx, err := eng.Build()
	if err != nil {
		return fmt.Errorf("build main script: %w", err)
	}

	log.Info("running setup")

	if err := ctx.RunSetup(); err != nil {
		return fmt.Errorf("run_setup: %w", err)
	}

	log.Info("running bars", zap.Int("bar_count", len(bars)))

	if err := eng.Run(bars); err != nil {
		return fmt.Errorf("run_process: %w", err)
	}

	outputs := ctx.GenerateOutputs()

	encoded, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode outputs: %w", err)
	}

	fmt.Println(string(encoded))

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "firscript",
		Usage: "run a FirScript strategy over a CSV bar series",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "script",
				Aliases:  []string{"s"},
				Usage:    "path to the strategy script source",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "path to a time,open,high,low,close,volume CSV file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a registry config YAML file (input_overrides, column_mapping)",
			},
		},
		Action: runAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Get().Sugar().Fatal(err)
	}
}
