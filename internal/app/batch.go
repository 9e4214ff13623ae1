// internal/app/batch.go
package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"degen/internal/jobs"
	"degen/internal/output"
	"degen/internal/pipeline"
	"degen/internal/writers"
	"degen/pkg/api"
)

func newBatchCmd(e *env) *cobra.Command {
	var (
		threads  int
		sortByID bool
		ef       engineFlags
		of       outputFlags
	)
	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Design every row of one or more job files",
		Long: `Design every row of one or more job files.

Rows are whitespace-separated: id include [avoid]. Letter lists are written
ACD or A,C,D; "-" is an empty list, and an id of "-" gets a random UUID.
Blank lines and # comments are skipped. FILE may be "-" for stdin or end in
.gz. Rows that cannot be designed are reported in the output and logged.`,
		Example: `  degen batch sites.tsv -t 8 -o jsonl
  zcat sites.tsv.gz | degen batch - --sort`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ef.apply(cmd, e); err != nil {
				return err
			}
			wopts, err := of.options(e)
			if err != nil {
				return err
			}
			list, err := jobs.LoadAll(args, e.stdin)
			if err != nil {
				return usageErr(err)
			}
			if threads <= 0 {
				threads = runtime.NumCPU()
			}
			d, closeFn, err := e.newDesigner(designerDeps{workers: threads})
			if err != nil {
				return err
			}
			defer closeFn()
			tab := d.Engine().Table()

			in, done := writers.StartDesignWriter(e.out, of.format, sortByID, wopts, threads*4)
			failed := 0
			perr := pipeline.ForEachDesign(cmd.Context(), pipeline.Config{Threads: threads}, list, d,
				func(o pipeline.Outcome) error {
					var row api.DesignV1
					if o.Err != nil {
						failed++
						e.log.Warn("job failed", "id", o.Job.ID, "job", o.Job.Index+1, "err", o.Err)
						row = output.ToAPIFailure(o.Job.ID, o.Job.Include, o.Job.Avoid, o.Err)
					} else {
						row = output.ToAPIDesign(o.Job.ID, o.Design, tab)
					}
					select {
					case in <- row:
						return nil
					case <-cmd.Context().Done():
						return cmd.Context().Err()
					}
				})
			close(in)
			if werr := <-done; werr != nil {
				return ioErr(werr)
			}
			if perr != nil {
				return perr
			}
			e.log.Info("batch done", "jobs", len(list), "failed", failed)
			return nil
		},
	}
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "concurrent designs (0 = all CPUs)")
	cmd.Flags().BoolVar(&sortByID, "sort", false, "buffer and sort rows by id")
	ef.register(cmd)
	of.register(cmd)
	return cmd
}
