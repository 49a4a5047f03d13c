package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	cache "github.com/theMomax/openmeteogram/cache/verification"
	"github.com/theMomax/openmeteogram/config"
	"github.com/theMomax/openmeteogram/models/meteogram"
	"github.com/theMomax/openmeteogram/models/verification"
	"github.com/theMomax/openmeteogram/publish"
	"github.com/theMomax/openmeteogram/server"
)

// Config paths
const (
	PathScheduleInterval = "schedule.interval"
	PathScheduleJobs     = "schedule.jobs"
	PathScheduleModel    = "schedule.model"
	PathScheduleServe    = "schedule.serve"
)

// Scheduled jobs
const (
	JobSnapshot = "snapshot"
	JobVerify   = "verify"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run snapshots and verifications periodically",
	Long: `schedule runs the configured jobs right away and then at every interval until
it is interrupted. The verify job compares the meteogram of every city of the
configured model and logs the results.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := interruptible()
		defer cancel()

		job, err := scheduledJob(config.Viper.GetStringSlice(PathScheduleJobs), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if config.Viper.GetBool(PathScheduleServe) {
			go func() {
				log.WithField("address", server.Address()).Info("starting server")
				log.WithError(server.Run()).Error("server stopped")
				cancel()
			}()
		}
		return publish.Schedule(ctx, config.Viper.GetDuration(PathScheduleInterval), job)
	},
}

func init() {
	flags := scheduleCmd.Flags()

	flags.Duration(PathScheduleInterval, time.Hour, "time between two runs")
	config.Viper.BindPFlag(PathScheduleInterval, flags.Lookup(PathScheduleInterval))

	flags.StringSlice(PathScheduleJobs, []string{JobSnapshot}, "jobs to run: "+JobSnapshot+", "+JobVerify)
	config.Viper.BindPFlag(PathScheduleJobs, flags.Lookup(PathScheduleJobs))

	flags.String(PathScheduleModel, meteogram.DefaultModel, "model whose cities are verified")
	config.Viper.BindPFlag(PathScheduleModel, flags.Lookup(PathScheduleModel))

	flags.Bool(PathScheduleServe, false, "serve the meteograms and the cached verifications meanwhile")
	config.Viper.BindPFlag(PathScheduleServe, flags.Lookup(PathScheduleServe))

	config.RootCtx.AddCommand(scheduleCmd)
}

// scheduledJob returns a job running names in order. It stops at the first
// failing one.
func scheduledJob(names []string, w io.Writer) (func(context.Context) error, error) {
	var jobs []func(context.Context) error
	for _, name := range names {
		switch name {
		case JobSnapshot:
			jobs = append(jobs, func(ctx context.Context) error {
				return snapshot(ctx, w)
			})
		case JobVerify:
			jobs = append(jobs, verifyCities)
		default:
			return nil, fmt.Errorf("unknown job %q", name)
		}
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs configured")
	}

	return func(ctx context.Context) error {
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := job(ctx); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

// verifyCities refreshes the cached verification of every city. Failures
// of single cities are logged.
func verifyCities(ctx context.Context) error {
	dir := meteogram.Directory()
	model := config.Viper.GetString(PathScheduleModel)

	for _, city := range meteogram.Cities(dir, model) {
		if err := ctx.Err(); err != nil {
			return err
		}
		l := log.WithField("city", city.Slug)

		report, err := verification.Run(verification.ForCity(meteogram.PayloadPath(dir, model, city.Slug), city.Lat, city.Lon))
		if err != nil {
			l.WithError(err).Warn("verification failed")
			continue
		}
		cache.Put(model+"/"+city.Slug, report)
		l.WithField("compared", report.Compared).Info("verified meteogram")
	}
	return nil
}
