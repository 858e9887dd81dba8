package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/rubiojr/insights/compiler"
	"github.com/rubiojr/insights/config"
	"github.com/rubiojr/insights/errors"
	"github.com/rubiojr/insights/logger"
)

// settings is the configuration loaded before any command runs.
var settings = config.Default()

// Execute runs the insights CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "insights",
		Usage:                  "Show the C++ the compiler sees behind your source",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Configuration file (default: ./insights.toml)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Log as JSON",
			},
		},
		Before: setup,
		After: func(ctx context.Context, cmd *cli.Command) error {
			logger.Cleanup()
			return nil
		},
		// Allow `insights dump.yaml` as shorthand for `insights emit dump.yaml`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && isFile(cmd.Args().First()) {
				return emit(cmd.Args().First(), settings.Options())
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "emit",
				Usage:     "Print the generated source for a tree dump",
				ArgsUsage: "<dump.yaml>",
				Flags:     generationFlags(),
				Action:    emitAction,
			},
			{
				Name:      "batch",
				Usage:     "Translate every tree dump in a directory",
				ArgsUsage: "<dir>",
				Flags: append(generationFlags(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: next to the dumps)",
					},
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Parallel translations (default: batch.jobs, else one per CPU)",
					},
				),
				Action: batchAction,
			},
			{
				Name:  "config",
				Usage: "Manage the configuration file",
				Commands: []*cli.Command{
					{
						Name:      "init",
						Usage:     "Write the default configuration",
						ArgsUsage: "[path]",
						Action:    configInitAction,
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// setup loads the configuration and initializes logging. Flags win over
// the configuration file.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	settings = cfg

	level := cfg.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	jsonLog := cfg.Log.JSON || cmd.Bool("log-json")
	if err := logger.Initialize(level, jsonLog); err != nil {
		return ctx, errors.Wrap(err, "initializing logger")
	}
	return ctx, nil
}

func generationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "show-constexpr", Usage: "Annotate constant expressions with their value"},
		&cli.BoolFlag{Name: "no-access", Usage: "Omit access specifiers in declaration headers"},
		&cli.BoolFlag{Name: "all-casts", Usage: "Show every implicit conversion"},
		&cli.BoolFlag{Name: "no-headers", Usage: "Do not prepend required includes"},
		&cli.IntFlag{Name: "indent", Usage: "Spaces per indentation level"},
	}
}

// options merges the command's generation flags into the configured
// options.
func options(cmd *cli.Command) compiler.Options {
	opts := settings.Options()
	if cmd.IsSet("show-constexpr") {
		opts.Flags.ShowConstantExprValue = cmd.Bool("show-constexpr")
	}
	if cmd.IsSet("no-access") {
		opts.Flags.SkipAccess = cmd.Bool("no-access")
	}
	if cmd.IsSet("all-casts") {
		opts.ShowAllImplicitCasts = cmd.Bool("all-casts")
	}
	if cmd.IsSet("no-headers") {
		opts.EmitHeaders = !cmd.Bool("no-headers")
	}
	if cmd.IsSet("indent") {
		opts.IndentWidth = int(cmd.Int("indent"))
	}
	return opts
}

func emitAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: insights emit <dump.yaml>")
	}
	return emit(cmd.Args().First(), options(cmd))
}

func emit(path string, opts compiler.Options) error {
	comp := &compiler.Compiler{Options: opts}
	src, err := comp.Emit(path)
	if err != nil {
		return err
	}
	fmt.Print(src)
	return nil
}

func configInitAction(ctx context.Context, cmd *cli.Command) error {
	path := config.FileName
	if cmd.NArg() > 0 {
		path = cmd.Args().First()
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
