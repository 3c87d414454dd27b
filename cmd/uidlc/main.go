package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"uidlc/compile"
	"uidlc/config"
	"uidlc/misc"
	"uidlc/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// nothing to do, just return
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			// we do not want any of your secrets!
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
		return
	}
	fmt.Fprintf(os.Stderr, "Unknown command %q, nothing to do\n", name)
}

func main() {

	// allow graceful shutdown on interrupt, directory processing checks context
	// between components
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "compiler for UIDL component descriptions",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "generate",
				Aliases:      []string{"gen"},
				Usage:        "Compiles UIDL component(s) into markup, logic and stylesheet files",
				OnUsageError: usageErrorHandler,
				Action:       compile.Run,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "project-styles", Aliases: []string{"ps"},
						Usage: "load project style set from `FILE` (JSON, YAML or CSS), overrides configuration"},
					&cli.BoolFlag{Name: "project-stylesheet", Usage: "also write shared project stylesheet to DESTINATION"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				},
				ArgsUsage: "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    path to UIDL component file(s) to process, following formats are supported:
        path to a file: "[path_to_file]component.json" (JSON or YAML)
        path to a directory: "[path_to_directory]directory" - recursively process all .json, .yaml and .yml files under directory

DESTINATION:
    always a path, output file names are derived from component names, source directory structure is kept
    if absent - current working directory

For every component markup (.html) and logic (.ts) files are produced. Stylesheet
(.css) is produced only when at least one element has inline styles.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "inspect",
				Usage:        "Shows how styles of UIDL component elements are resolved, nothing is written",
				OnUsageError: usageErrorHandler,
				Action:       compile.Inspect,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "project-styles", Aliases: []string{"ps"},
						Usage: "load project style set from `FILE` (JSON, YAML or CSS), overrides configuration"},
				},
				ArgsUsage: "SOURCE",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
