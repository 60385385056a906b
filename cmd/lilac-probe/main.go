package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/grough/lilac-modules-vcv/pkg/framework/debug"
	"github.com/grough/lilac-modules-vcv/pkg/framework/port"
	"github.com/grough/lilac-modules-vcv/pkg/lilac"
	"github.com/grough/lilac-modules-vcv/pkg/plugin"
	"github.com/grough/lilac-modules-vcv/pkg/probe"
)

func main() {
	os.Exit(run())
}

func run() int {
	help := flag.Bool("h", false, "Show help.")
	list := flag.Bool("l", false, "List the available modules and their ports.")
	level := flag.String("v", "warn", "Log level: debug, info, warn, error or off.")
	format := flag.String("o", probe.OutputAuto, "Output format: auto, csv or table. Auto prints a table on a terminal and CSV otherwise.")
	play := flag.String("p", "", "Play the named output column of each scenario after rendering, e.g. \"Monitor 1\".")
	report := flag.Bool("t", false, "Print render timings to standard error.")
	logFile := flag.String("log", "", "Append log output to this file instead of standard error.")
	flag.Usage = printUsage
	flag.Parse()

	logLevel, err := debug.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}
	debug.SetLevel(logLevel)
	if *logFile != "" {
		f, err := debug.OpenLogFile(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 2
		}
		defer f.Close()
	}

	plug, err := lilac.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not register modules: %v\n", err)
		return 1
	}

	if *list {
		printModels(plug)
		return 0
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		return 0
	}

	write, err := probe.WriterFor(*format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 2
	}

	var scenarios []*probe.Scenario
	for _, path := range scenarioFiles(flag.Args()) {
		sc, err := probe.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		scenarios = append(scenarios, sc)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	renderer := probe.NewRenderer(plug, debug.Default())
	results, err := renderer.RenderAll(ctx, scenarios)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		return 1
	}

	retval := 0
	for i, res := range results {
		if i > 0 {
			fmt.Println()
		}
		if err := write(os.Stdout, res); err != nil {
			fmt.Fprintf(os.Stderr, "could not write %s: %v\n", res.Name, err)
			return 1
		}
		if len(res.Issues) > 0 {
			retval = 1
		}
	}

	if *report && len(results) > 0 {
		fmt.Fprint(os.Stderr, renderer.Profiler().Report(float64(results[0].SampleRate)))
	}

	if *play != "" {
		code, err := playColumns(ctx, results, *play, func(rate int) (columnPlayer, error) {
			return probe.NewPlayer(rate)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		retval = max(retval, code)
	}
	return retval
}

type columnPlayer interface {
	Play(ctx context.Context, col probe.Column, rate int) error
	Close() error
}

// playColumns plays the named column of every result through one player,
// opened at the rate of the first result that has the column. It returns 1
// when a result lacks the column.
func playColumns(ctx context.Context, results []*probe.Result, name string, open func(rate int) (columnPlayer, error)) (int, error) {
	retval := 0
	var player columnPlayer
	defer func() {
		if player != nil {
			player.Close()
		}
	}()

	for _, res := range results {
		col, ok := res.Column(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "%s has no column %q\n", res.Name, name)
			retval = 1
			continue
		}
		rate := int(res.SampleRate) / res.Every
		if player == nil {
			p, err := open(rate)
			if err != nil {
				return retval, err
			}
			player = p
		}
		if err := player.Play(ctx, col, rate); err != nil {
			return retval, fmt.Errorf("could not play %s: %w", res.Name, err)
		}
	}
	return retval, nil
}

// scenarioFiles expands directories into the .yml and .yaml files they contain
func scenarioFiles(args []string) []string {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			files = append(files, arg)
			continue
		}
		for _, pattern := range []string{"*.yml", "*.yaml"} {
			matches, _ := filepath.Glob(filepath.Join(arg, pattern))
			files = append(files, matches...)
		}
	}
	return files
}

func printModels(plug *plugin.Plugin) {
	for _, model := range plug.Models() {
		m := model.New()
		fmt.Printf("%s - %s\n", model.Info.Slug, model.Info.Description)
		for _, p := range m.Parameters().All() {
			fmt.Printf("  param  %-20s %g..%g\n", p.Name, p.Min, p.Max)
		}
		ports := m.Ports()
		for _, dir := range []port.Direction{port.DirectionInput, port.DirectionOutput} {
			for id := 0; id < ports.Count(dir); id++ {
				fmt.Printf("  %-6s %s\n", dir, ports.Info(dir, id).Name)
			}
		}
	}
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "%s renders lilac modules offline from YAML scenario files.\n", name)
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] [path ...]\n", name)
	fmt.Fprintf(os.Stderr, "Paths may be scenario files or directories of them.\n")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 20))
	fmt.Fprintf(os.Stderr, "Example scenario:\n%s\n", exampleScenario)
}

const exampleScenario = `module: Counter
sampleRate: 48000
duration: 0.5
params:
  Count: 4
inputs:
  Clock: {kind: square, frequency: 20}
record: [Gate, End of cycle]
every: 480`
