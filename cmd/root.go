// Package cmd implements the graphtraverse CLI, adapted from the
// teacher's cmd/root.go: a single cobra command that parses its
// argument, drives it through the pipeline, and prints or visualizes
// the result depending on the flags passed.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"

	"github.com/cube2222/graphtraverse/algebra"
	"github.com/cube2222/graphtraverse/compile"
	"github.com/cube2222/graphtraverse/config"
	"github.com/cube2222/graphtraverse/execution"
	"github.com/cube2222/graphtraverse/storage"
	_ "github.com/cube2222/graphtraverse/storage/csv"
	_ "github.com/cube2222/graphtraverse/storage/json"
	"github.com/cube2222/graphtraverse/telemetry"
	"github.com/cube2222/graphtraverse/visualize"
)

var (
	configPath string
	explain    bool
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "graphtraverse",
	Args:  cobra.ExactArgs(1),
	Short: "Plan and run a graph pattern MATCH query",
	Example: `graphtraverse "MATCH (a:Person)-[:KNOWS]->(b:Person)"
graphtraverse --explain "MATCH (a:Person)-[:KNOWS*1..3]->(b)"`,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.ReadConfig(configPath)
		if err != nil {
			return fmt.Errorf("couldn't read config: %w", err)
		}

		plan, err := compile.Compile(args[0], compile.Options{
			MaintainTransposeMatrices: cfg.MaintainTransposeMatrices(),
			Debug:                     debug,
		})
		if err != nil {
			return fmt.Errorf("couldn't plan query: %w", err)
		}

		transposed := 0
		for _, e := range plan.Expressions {
			if e.IsTransposed() {
				transposed++
			}
		}
		telemetry.SendQueryPlanned(ctx, telemetry.QueryPlannedData{
			ExpressionCount:   len(plan.Expressions),
			TransposedCount:   transposed,
			MaintainTranspose: cfg.MaintainTransposeMatrices(),
		})

		if explain {
			return renderExplain(plan.Expressions)
		}

		store, err := storage.Open(cfg.Store.Kind, cfg.Store)
		if err != nil {
			return fmt.Errorf("couldn't open graph store: %w", err)
		}

		return runAndPrint(store, plan.Expressions)
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "graphtraverse.yml", "Path to the configuration file.")
	rootCmd.Flags().BoolVar(&explain, "explain", false, "Show the chosen ordering as a graph instead of running the query.")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Dump the compiled query graph before planning.")
}

// Execute runs the root command.
func Execute(ctx context.Context) {
	cobra.CheckErr(rootCmd.ExecuteContext(ctx))
}

// renderExplain writes the chosen ordering out as a PNG (via the `dot`
// binary, same as the teacher's --explain path) and opens it.
func renderExplain(ordering []*algebra.Expression) error {
	dot, err := visualize.String(ordering)
	if err != nil {
		return fmt.Errorf("couldn't build graph: %w", err)
	}

	file, err := os.CreateTemp(os.TempDir(), "graphtraverse-explain-*.png")
	if err != nil {
		return fmt.Errorf("couldn't create temporary file: %w", err)
	}

	cmd := exec.Command("dot", "-Tpng")
	cmd.Stdin = strings.NewReader(dot)
	cmd.Stdout = file
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("couldn't render graph: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("couldn't close temporary file: %w", err)
	}
	if err := open.Start(file.Name()); err != nil {
		return fmt.Errorf("couldn't open graph: %w", err)
	}
	return nil
}

// runAndPrint executes ordering against store and prints the resulting
// rows as a table, the way the teacher's batch output printer renders
// query results via tablewriter.
func runAndPrint(store storage.GraphStore, ordering []*algebra.Expression) error {
	ops, err := execution.Build(store, ordering)
	if err != nil {
		return fmt.Errorf("couldn't build execution plan: %w", err)
	}

	rows := []execution.Row{{}}
	for _, op := range ops {
		rows, err = op.Next(rows)
		if err != nil {
			return fmt.Errorf("couldn't execute plan: %w", err)
		}
	}

	aliases := aliasesInOrder(ordering)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(aliases)
	for _, row := range rows {
		record := make([]string, len(aliases))
		for i, alias := range aliases {
			record[i] = row[alias]
		}
		table.Append(record)
	}
	table.Render()

	return nil
}

func aliasesInOrder(ordering []*algebra.Expression) []string {
	seen := map[string]bool{}
	var out []string
	add := func(alias string) {
		if seen[alias] {
			return
		}
		seen[alias] = true
		out = append(out, alias)
	}
	for _, e := range ordering {
		add(e.Source())
		add(e.Destination())
	}
	return out
}
