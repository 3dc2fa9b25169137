// Command smcemu loads a scenario, runs it through the emulated host and
// prints the audit log as YAML.
//
// Usage:
//
//	smcemu [-config scenario.yml] [-execute N] [-version]
//
// Without -execute the scenario runs one full cycle.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/smcemu/bootstrap"
	"github.com/kbukum/smcemu/config"
	"github.com/kbukum/smcemu/logger"
	"github.com/kbukum/smcemu/observability"
	"github.com/kbukum/smcemu/version"
)

const appName = "smcemu"

// ExitError carries the process exit code of a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

type options struct {
	configPath string
	executions int
	version    bool
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parse(args []string, out io.Writer) (*options, bool, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(out)
	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Path to the scenario file. Defaults to the standard search paths.")
	fs.IntVar(&opts.executions, "execute", 0, "Run START, N EXECUTE phases and STOP instead of a full cycle.")
	fs.BoolVar(&opts.version, "version", false, "Print the build version and exit.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if opts.executions < 0 {
		return nil, false, &ExitError{Code: 2, Message: "-execute must not be negative"}
	}
	return opts, false, nil
}

func run(ctx context.Context, out io.Writer, args []string) error {
	opts, exit, err := parse(args, out)
	if err != nil || exit {
		return err
	}
	if opts.version {
		fmt.Fprintln(out, version.Get().String())
		return nil
	}

	var loadOpts []config.LoaderOption
	if opts.configPath != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.configPath))
	}
	var cfg config.Emulator
	if err := config.LoadConfig(appName, &cfg, loadOpts...); err != nil {
		return err
	}
	cfg.ApplyDefaults()

	log := logger.Init(&cfg.Logging, appName)

	var emuOpts []bootstrap.Option
	if cfg.Telemetry.Enabled() {
		metrics, shutdown, err := initTelemetry(ctx, cfg.Telemetry)
		if err != nil {
			return err
		}
		defer shutdown()
		emuOpts = append(emuOpts, bootstrap.WithMetrics(metrics))
	}

	emu, err := bootstrap.New(&cfg, nil, emuOpts...)
	if err != nil {
		return err
	}

	host := bootstrap.NewHost(appName, version.Get().Short(), bootstrap.WithHostLogger(log))
	task := func(ctx context.Context) error {
		emu.Cycle(ctx)
		return nil
	}
	if opts.executions > 0 {
		if err := host.Register(emu); err != nil {
			return err
		}
		task = func(ctx context.Context) error {
			for i := 0; i < opts.executions; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				emu.Execute(ctx)
			}
			return nil
		}
	}
	if err := host.RunTask(ctx, task); err != nil {
		return err
	}
	return bootstrap.WriteReports(out, emu.Report(ctx))
}

func initTelemetry(ctx context.Context, t config.Telemetry) (*observability.PhaseMetrics, func(), error) {
	tcfg := observability.DefaultTracerConfig(appName)
	tcfg.ServiceVersion = version.Get().Short()
	tcfg.Endpoint = t.Endpoint
	tcfg.Insecure = t.Insecure
	tcfg.SampleRate = t.SampleRate
	tp, err := observability.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, nil, err
	}

	mcfg := observability.DefaultMeterConfig(appName)
	mcfg.ServiceVersion = tcfg.ServiceVersion
	mcfg.Endpoint = t.Endpoint
	mcfg.Insecure = t.Insecure
	mp, err := observability.InitMeter(ctx, &mcfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}

	metrics, err := observability.NewPhaseMetrics(observability.Meter(appName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}
	return metrics, func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	}, nil
}
