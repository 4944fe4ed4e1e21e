package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"targetinfo/internal/target"
	"targetinfo/internal/trace"
)

// setupTracing builds the tracer from the [trace] config section, letting
// the --trace* flags override it.
func (c *cli) setupTracing(cmd *cobra.Command) error {
	tc := c.cfg.Trace
	flags := cmd.Flags()

	if flags.Changed("trace") {
		tc.Output, _ = flags.GetString("trace") //nolint:errcheck
	}
	if flags.Changed("trace-level") {
		tc.Level, _ = flags.GetString("trace-level") //nolint:errcheck
	}
	if flags.Changed("trace-mode") {
		tc.Mode, _ = flags.GetString("trace-mode") //nolint:errcheck
	}
	// asking for an output without a level means "trace the registry"
	if tc.Output != "" && (tc.Level == "" || tc.Level == "off") {
		tc.Level = "detail"
	}
	c.cfg.Trace = tc

	cfg, err := c.cfg.TracerConfig()
	if err != nil {
		return fmt.Errorf("invalid trace configuration: %w", err)
	}
	if cfg.Level == trace.LevelOff {
		c.tracer = trace.Nop
		return nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		cfg.Output = cmd.ErrOrStderr()
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	c.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return nil
}

// dumpRing writes the in-memory trace, if any, to w.
func (c *cli) dumpRing(w io.Writer) {
	var ring *trace.RingTracer
	switch t := c.tracer.(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring, _ = t.Ring()
	}
	if ring == nil {
		return
	}
	fmt.Fprintln(w, "trace: last registry events")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

// closeTracer detaches the tracer from the registry and releases it.
func (c *cli) closeTracer(w io.Writer) {
	if c.tracer == nil || c.tracer == trace.Nop {
		return
	}
	target.SetTracer(trace.Nop)
	if err := c.tracer.Flush(); err != nil {
		fmt.Fprintf(w, "trace: flush error: %v\n", err)
	}
	if err := c.tracer.Close(); err != nil {
		fmt.Fprintf(w, "trace: close error: %v\n", err)
	}
	c.tracer = trace.Nop
}
