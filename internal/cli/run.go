package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/aristath/dividend-calculator/internal/modules/currency"
	"github.com/aristath/dividend-calculator/internal/modules/display"
	"github.com/aristath/dividend-calculator/internal/modules/valuation"
)

// ErrUsage marks command line errors that should print usage
var ErrUsage = errors.New("usage error")

// Exit codes returned by ExitCode
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ExitCode maps an error from ParseArgs or Run to the process exit status.
// Help requests exit cleanly, command line mistakes exit 2 and everything
// else, including unreadable scenario files, exits 1.
func ExitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitError
	}
}

// Options are the parsed command line options
type Options struct {
	Scenario Scenario
	Path     string
}

// ParseArgs parses ddm's command line. When -scenario is given, its file
// supplies the inputs and explicitly set -model or -currency flags override it.
func ParseArgs(args []string, stderr io.Writer) (Options, error) {
	fs := flag.NewFlagSet("ddm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var s Scenario
	fs.Float64Var(&s.D0, "d0", 2, "Current annual dividend D0")
	fs.Float64Var(&s.RequiredReturn, "r", 10, "Required return, percent")
	fs.Float64Var(&s.ConstantGrowth, "g", 4, "Constant growth rate, percent")
	fs.Float64Var(&s.ShortGrowth, "gs", 20, "Short-term growth rate, percent")
	fs.Float64Var(&s.LongGrowth, "gl", 4, "Long-term growth rate, percent")
	fs.IntVar(&s.ShortYears, "n", 5, "Years of short-term growth")
	fs.IntVar(&s.Horizon, "horizon", 0, "Years shown in the schedule (0 = default)")
	fs.StringVar(&s.Model, "model", valuation.SelectionAll, "Model to show: all, constant, growth or changing")
	fs.StringVar(&s.Currency, "currency", string(currency.StyleCode), "Currency style: code or symbol")
	path := fs.String("scenario", "", "YAML scenario file")

	if err := fs.Parse(args); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return Options{}, fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}

	opts := Options{Scenario: s, Path: *path}
	if *path == "" {
		return opts, nil
	}

	file, err := LoadScenario(*path)
	if err != nil {
		return Options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			file.Model = s.Model
		case "currency":
			file.Currency = s.Currency
		}
	})
	if file.Model == "" {
		file.Model = valuation.SelectionAll
	}
	opts.Scenario = file
	return opts, nil
}

// Run validates the scenario, values it and writes the rendered view to out
func Run(s Scenario, maxHorizon int, out io.Writer, log zerolog.Logger) error {
	style, err := currency.ParseStyle(s.Currency)
	if err != nil {
		return err
	}

	if err := s.Validate(maxHorizon); err != nil {
		return err
	}

	service := valuation.NewService(valuation.DefaultHorizon, nil, log)
	report := service.Calculate(s.ToInput())

	formatter := currency.NewFormatter(style)
	view, err := display.BuildView(report, s.Model, formatter)
	if err != nil {
		return err
	}

	_, err = io.WriteString(out, Render(view))
	return err
}
