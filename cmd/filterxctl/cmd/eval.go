package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/streamforge/filterx/internal/evalctx"
	"github.com/streamforge/filterx/internal/expr"
	"github.com/streamforge/filterx/internal/host"
	"github.com/streamforge/filterx/internal/object"
	"github.com/streamforge/filterx/internal/variable"
)

var (
	exampleName string
	messageJSON string
	traceEval   bool
	debugEval   bool
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a demonstration expression tree against a JSON message",
	Long: `Evaluate one of filterxctl's built-in demonstration expression trees
against a JSON log message fixture.

Examples:
  filterxctl eval --expr startswith --message '{"MESSAGE":"GET /index.html"}'
  filterxctl eval --expr regexp_search --message '{"MESSAGE":"status=200 ok"}' --trace`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&exampleName, "expr", "e", "startswith", fmt.Sprintf("demonstration tree to evaluate (%v)", exampleNames()))
	evalCmd.Flags().StringVarP(&messageJSON, "message", "m", "{}", "JSON message fixture")
	evalCmd.Flags().BoolVar(&traceEval, "trace", false, "print per-node trace events")
	evalCmd.Flags().BoolVar(&debugEval, "debug", false, "set the evaluation context's debug flag (produces no extra output)")
}

func runEval(*cobra.Command, []string) error {
	store := host.NewJSONMessageStore(messageJSON)
	dir := variable.NewDirectory()

	tree, err := buildExample(exampleName, dir, store)
	if err != nil {
		return err
	}

	cfg := &expr.Config{
		Stats:     host.NewMemStatsRegistry(),
		Regex:     host.StdRegexEngine{},
		Templates: host.SimpleTemplateEngine{},
		Debug:     debugEval,
	}
	if err := tree.Init(cfg); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer func() {
		tree.Deinit(cfg)
		tree.Free()
	}()

	ctx := evalctx.New(dir, store)
	ctx.EnableTracing(traceEval)
	ctx.EnableDebug(debugEval)

	result, err := tree.Eval(ctx)
	if err != nil {
		printResultLine(false, fmt.Sprintf("error: %v", err))
		return nil
	}

	if traceEval {
		for _, ev := range ctx.Events() {
			fmt.Fprintf(os.Stderr, "trace: %s -> %s (falsy=%v)\n", ev.Node, ev.Result, ev.Falsy)
		}
	}

	printResultLine(object.IsTruthy(result), object.Repr(result))
	return nil
}

// printResultLine renders the evaluation outcome, colorized green/red
// when stdout is a terminal (github.com/mattn/go-isatty, a direct
// teacher dependency) and left plain otherwise — piping output to a file
// or another process should never see ANSI escapes.
func printResultLine(ok bool, text string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Println(text)
		return
	}
	const (
		green = "\x1b[32m"
		red   = "\x1b[31m"
		reset = "\x1b[0m"
	)
	color := red
	if ok {
		color = green
	}
	fmt.Printf("%s%s%s\n", color, text, reset)
}
