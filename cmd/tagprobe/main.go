package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rawbytedev/tagval"
	"github.com/rawbytedev/tagval/internal/probe"
)

var flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "logfmt",
		Aliases: []string{"f"},
		Usage:   "`format` logs as text or json",
		Value:   "text",
		EnvVars: []string{"TAGPROBE_LOGFMT"},
	},
	&cli.StringFlag{
		Name:    "loglvl",
		Usage:   "set logging `level` to trace, debug, info, warn, error or fatal",
		Value:   "info",
		EnvVars: []string{"TAGPROBE_LOGLVL"},
	},
}

var errProbeFailed = errors.New("probe failed")

func main() {
	log := logrus.New()
	app := &cli.App{
		Name:      "tagprobe",
		Usage:     "check that tagval round trips stay allocation free",
		UsageText: "tagprobe [global options] command [command options]",
		Flags:     flags,
		Before: func(c *cli.Context) error {
			return configure(log, c.String("loglvl"), c.String("logfmt"))
		},
		Commands: []*cli.Command{
			runCommand(log),
			kindsCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func configure(log *logrus.Logger, lvl, format string) error {
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch format {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

func runCommand(log *logrus.Logger) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "probe scalar kinds for mismatches and heap allocations",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    "plan",
				Usage:   "load the probe plan from a YAML `file`",
				EnvVars: []string{"TAGPROBE_PLAN"},
			},
			&cli.IntFlag{
				Name:    "iterations",
				Aliases: []string{"n"},
				Usage:   "override the plan's iteration count",
				EnvVars: []string{"TAGPROBE_ITERATIONS"},
			},
			&cli.PathFlag{
				Name:  "memprofile",
				Usage: "write a heap profile to `file` after the run",
			},
		},
		Action: func(c *cli.Context) error {
			plan := probe.DefaultPlan()
			if path := c.Path("plan"); path != "" {
				var err error
				if plan, err = probe.LoadPlanFile(path); err != nil {
					return err
				}
			}
			if c.IsSet("iterations") {
				plan.Iterations = c.Int("iterations")
			}

			profile := c.Path("memprofile")
			if profile != "" {
				runtime.MemProfileRate = 1
			}

			results, err := probe.Run(c.Context, plan, log)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				entry := log.WithFields(logrus.Fields{
					"kind":   r.Kind,
					"allocs": r.Allocs,
				})
				if r.OK() {
					entry.Info("ok")
					continue
				}
				failed++
				entry.WithField("mismatches", r.Mismatches).Error("failed")
			}

			if profile != "" {
				if err := writeHeapProfile(profile); err != nil {
					return err
				}
				log.WithField("path", profile).Info("wrote heap profile")
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d kinds", errProbeFailed, failed, len(results))
			}
			return nil
		},
	}
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}

func kindsCommand() *cli.Command {
	return &cli.Command{
		Name:  "kinds",
		Usage: "list the scalar kinds and their cell widths",
		Action: func(c *cli.Context) error {
			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tBYTES")
			for _, k := range tagval.Kinds() {
				fmt.Fprintf(w, "%s\t%d\n", k, k.Size())
			}
			return w.Flush()
		},
	}
}
