package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"targetinfo/internal/target"
	"targetinfo/internal/triple"
)

type resolution struct {
	input  string
	target *target.Target
	err    error
}

// resolveAll looks every triple up concurrently; results keep input order.
func resolveAll(ctx context.Context, inputs []string) ([]resolution, error) {
	results := make([]resolution, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].input = in
			tt, err := triple.Parse(in)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].target, _, results[i].err = target.Resolve("", tt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve TRIPLE...",
		Short: "Resolve several triples to targets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := resolveAll(cmd.Context(), args)
			if err != nil {
				return err
			}
			failed := 0
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", r.input, r.err)
					continue
				}
				fmt.Fprintf(out, "%s: %s\n", r.input, r.target.Name())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d triples have no target", failed, len(results))
			}
			return nil
		},
	}
}
