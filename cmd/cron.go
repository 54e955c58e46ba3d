package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"warehouse.GO/cron"
)

var (
	jobName  string
	listJobs bool
)

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if listJobs {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "JOB\tSCHEDULE")
			for _, j := range cron.Sorted() {
				fmt.Fprintf(w, "%s\t%s\n", j.Name, j.Schedule)
			}
			return w.Flush()
		}
		if jobName != "" {
			name := strings.ToLower(jobName)
			j, ok := cron.Jobs()[name]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(out, "Running cron job: %s\n", name)
			j.Run(args...)
			return nil
		}
		fmt.Fprintln(out, "Starting cron scheduler...")
		c, err := cron.StartCron()
		if err != nil {
			return err
		}
		defer c.Stop()
		fmt.Fprintln(out, "Cron scheduler started. Press Ctrl+C to exit.")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	cronStartCmd.Flags().BoolVar(&listJobs, "list", false, "List registered jobs with their schedules")
	rootCmd.AddCommand(cronStartCmd)
}
