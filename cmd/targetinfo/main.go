package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"targetinfo/internal/config"
	"targetinfo/internal/target"
	"targetinfo/internal/target/all"
	"targetinfo/internal/trace"
	"targetinfo/internal/version"
)

// initTargets runs the registration entry point once per process.
var initTargets = sync.OnceFunc(all.InitializeAllTargetInfos)

// cli carries the state shared by all subcommands of one invocation.
type cli struct {
	cfg    config.Config
	tracer trace.Tracer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{tracer: trace.Nop}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil {
		c.dumpRing(stderr)
	}
	c.closeTracer(stderr)
	if err != nil {
		return 1
	}
	return 0
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "targetinfo",
		Short:         "Inspect the compiler target registry",
		Long:          `targetinfo lists the registered compilation targets and resolves triples and target names to them.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "path to "+config.FileName+" (default: search upwards from the working directory)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")

	root.AddCommand(newListCmd(c))
	root.AddCommand(newLookupCmd(c))
	root.AddCommand(newResolveCmd())
	root.AddCommand(newVersionCmd(c))
	return root
}

// setup loads the configuration, starts tracing and populates the registry.
func (c *cli) setup(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		c.cfg, err = config.Load(path)
	} else {
		c.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	if err := c.setupTracing(cmd); err != nil {
		return err
	}
	target.SetTracer(c.tracer)
	initTargets()
	return nil
}

// useColor decides whether output written to w gets colors.
func (c *cli) useColor(cmd *cobra.Command, w io.Writer) bool {
	mode := c.cfg.Output.Color
	if cmd.Flags().Changed("color") {
		mode, _ = cmd.Flags().GetString("color") //nolint:errcheck // flag is registered on the root
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
