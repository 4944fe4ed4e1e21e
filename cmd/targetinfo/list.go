package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"targetinfo/internal/report"
	"targetinfo/internal/target"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		format  string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = c.cfg.Output.Format
			}
			format = strings.ToLower(format)

			entries, err := report.Entries(target.Targets())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "pretty":
				return report.WritePretty(out, entries, report.PrettyOptions{
					Color:   c.useColor(cmd, out),
					Verbose: verbose,
				})
			case "json":
				return report.WriteJSON(out, entries)
			case "msgpack":
				return report.WriteMsgpack(out, entries)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty, json or msgpack)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show backend, JIT support and matched architectures")
	return cmd
}
