// internal/app/compute.go
package app

import (
	"errors"

	"github.com/spf13/cobra"

	"degen-core/gcode"
	"degen/internal/jobs"
	"degen/internal/output"
	"degen/internal/service"
	"degen/internal/writers"
)

func newComputeCmd(e *env) *cobra.Command {
	var (
		include, avoid, id string
		ef                 engineFlags
		of                 outputFlags
	)
	cmd := &cobra.Command{
		Use:   "compute -i LETTERS [-a LETTERS]",
		Short: "Design the shortest degenerate codon pattern for a set of amino acids",
		Example: `  degen compute -i FL
  degen compute -i ACD -a EFW -o json
  degen compute -i FL --coverage any`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ef.apply(cmd, e); err != nil {
				return err
			}
			wopts, err := of.options(e)
			if err != nil {
				return err
			}
			d, closeFn, err := e.newDesigner(designerDeps{workers: 1})
			if err != nil {
				return err
			}
			defer closeFn()

			inc, av := jobs.Letters(include), jobs.Letters(avoid)
			if len(inc) == 0 {
				return usageErr(errors.New("--include lists no amino acids"))
			}
			des, derr := d.Design(cmd.Context(), service.Request{Include: inc, Avoid: av})
			if derr != nil && des.Result.Outcome == "" {
				if isInputErr(derr) {
					return usageErr(derr)
				}
				return derr
			}

			in, done := writers.StartDesignWriter(e.out, of.format, false, wopts, 1)
			in <- output.ToAPIDesign(id, des, d.Engine().Table())
			close(in)
			if werr := <-done; werr != nil {
				return ioErr(werr)
			}
			// A canceled search still prints its best pattern before exiting 130.
			return derr
		},
	}
	cmd.Flags().StringVarP(&include, "include", "i", "", "amino acids to encode, e.g. ACD or A,C,D [*]")
	cmd.Flags().StringVarP(&avoid, "avoid", "a", "", "amino acids to exclude")
	cmd.Flags().StringVar(&id, "id", "", "label echoed in the output")
	_ = cmd.MarkFlagRequired("include")
	ef.register(cmd)
	of.register(cmd)
	return cmd
}

func isInputErr(err error) bool {
	return errors.Is(err, gcode.ErrUnknownAminoAcid) || errors.Is(err, service.ErrOverlap)
}
