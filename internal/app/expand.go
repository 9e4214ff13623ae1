// internal/app/expand.go
package app

import (
	"github.com/spf13/cobra"

	"degen-core/codon"
	"degen/internal/output"
	"degen/internal/writers"
	"degen/pkg/api"
)

func newExpandCmd(e *env) *cobra.Command {
	var (
		table string
		of    outputFlags
	)
	cmd := &cobra.Command{
		Use:   "expand PATTERN...",
		Short: "List the codons a degenerate pattern denotes and what they encode",
		Example: `  degen expand NNK
  degen expand GCN,TGY -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("table") {
				e.cfg.Engine.Table = table
			}
			wopts, err := of.options(e)
			if err != nil {
				return err
			}
			tab, err := e.loadTable()
			if err != nil {
				return err
			}
			list := make([]api.ExpansionV1, 0, len(args))
			for _, a := range args {
				p, err := codon.ParsePattern(a)
				if err != nil {
					return usageErr(err)
				}
				list = append(list, output.ToAPIExpansion(p, tab))
			}
			if err := writers.Write(of.format, e.out, list, wopts); err != nil {
				return ioErr(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "codon table file (YAML or JSON); default standard code")
	of.register(cmd)
	return cmd
}

func newTableCmd(e *env) *cobra.Command {
	var (
		table string
		of    outputFlags
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the genetic code in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("table") {
				e.cfg.Engine.Table = table
			}
			wopts, err := of.options(e)
			if err != nil {
				return err
			}
			tab, err := e.loadTable()
			if err != nil {
				return err
			}
			if err := writers.Write(of.format, e.out, output.ToAPITable(tab), wopts); err != nil {
				return ioErr(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "codon table file (YAML or JSON); default standard code")
	of.register(cmd)
	return cmd
}
