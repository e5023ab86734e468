// Command descartes-plan loads a waypoint/sample scenario from a YAML file
// and runs one build+solve cycle against a JointDistanceEvaluator, printing
// the chosen joint configuration per waypoint. It exists to demonstrate
// trellis.GraphSolver end to end, the way motionplan/armplanning/cmd-plan
// demonstrates armplanning.PlanManager end to end.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"go.viam.com/descartes/logging"
	"go.viam.com/descartes/trellis"
	"go.viam.com/descartes/trellis/fixture"
)

func main() {
	if err := realMain(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain(args []string) error {
	var verbose bool

	app := &cli.App{
		Name:            "descartes-plan",
		Usage:           "build and solve a trellis graph from a YAML waypoint scenario",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "v",
				Usage:       "enable debug logging",
				Destination: &verbose,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("usage: descartes-plan [-v] <scenario.yaml>", 1)
			}
			return runScenario(c.Context, c.Args().Get(0), verbose)
		},
	}

	return app.Run(args)
}

func runScenario(ctx context.Context, path string, verbose bool) error {
	logger := logging.NewLogger("descartes-plan")
	if verbose {
		logger.SetLevel(zapcore.DebugLevel)
	}

	scenario, err := fixture.LoadScenario(path)
	if err != nil {
		return err
	}

	solver := trellis.NewGraphSolver(trellis.NewJointDistanceEvaluator(), trellis.WithLogger(logger))

	if err := solver.Build(ctx, scenario.Samplers()); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	solution, err := solver.Solve(ctx)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	for i, sg := range solution {
		fmt.Printf("waypoint %d: %v\n", i, sg.Values)
	}

	stats := solver.Stats()
	fmt.Printf(
		"built %d vertices / %d edges in %s, solved in %s\n",
		stats.Vertices, stats.Edges, stats.BuildDuration, stats.SolveDuration,
	)
	return nil
}
