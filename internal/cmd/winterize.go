package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/clambin/rachio-tools/internal/health"
	"github.com/clambin/rachio-tools/internal/winterize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var winterizeCmd = cobra.Command{
	Use:   "winterize",
	Short: "Run the winterize schedule on a device and then hibernate it",
	Long: `Run the winterize schedule on a device and then hibernate it.

The schedule is read from winterize.yaml in the same directory as the configuration file or,
if that file doesn't exist, from the winterize section of the configuration file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return newApp(viper.GetViper(), slog.Default()).winterize(cmd.Context(), dryRun)
	},
}

func init() {
	winterizeCmd.Flags().Bool("dry-run", false, "Show the schedule, without starting any zones")
}

func (a *app) winterize(ctx context.Context, dryRun bool) error {
	schedule, err := a.schedule()
	if err != nil {
		return err
	}
	c, err := a.client()
	if err != nil {
		return err
	}
	s := winterize.New(c, a.notifier(), a.logger.With("component", "winterize"))

	if dryRun {
		return a.preview(ctx, s, schedule)
	}

	a.registry.MustRegister(s)
	return a.run(ctx, health.New(s, a.logger.With("component", "health")), func(ctx context.Context) error {
		return s.Run(ctx, schedule)
	})
}

func (a *app) preview(ctx context.Context, s *winterize.Sequencer, schedule winterize.Schedule) error {
	device, plan, err := s.Prepare(ctx, schedule)
	if err != nil {
		return err
	}
	summary := schedule.Summary()
	a.logger.Info("winterize schedule",
		"device", device.Name,
		"zones", summary.ZoneCount,
		"steps", summary.StepCount,
		"totalRunTime", summary.TotalRunTime,
	)
	for i, step := range plan {
		a.logger.Info("step",
			"step", fmt.Sprintf("%d/%d", i+1, len(plan)),
			"zone", step.ZoneName,
			"duration", step.Duration(),
			"rest", step.RestAfter(),
			"skip", step.Skip(),
		)
	}
	return nil
}

// schedule returns the winterize schedule. A winterize.yaml file next to the configuration file takes precedence
// over the winterize section in the configuration. If it doesn't name a device, winterize.deviceName is used.
func (a *app) schedule() (winterize.Schedule, error) {
	if cfgFile := a.cfg.ConfigFileUsed(); cfgFile != "" {
		schedule, ok, err := maybeLoadSchedule(filepath.Join(filepath.Dir(cfgFile), "winterize.yaml"))
		if err != nil || ok {
			if schedule.DeviceName == "" {
				schedule.DeviceName = a.cfg.GetString("winterize.deviceName")
			}
			return schedule, err
		}
	}

	var schedule winterize.Schedule
	if err := a.cfg.UnmarshalKey("winterize", &schedule); err != nil {
		return winterize.Schedule{}, fmt.Errorf("winterize schedule: %w", err)
	}
	return schedule, schedule.Validate()
}

func maybeLoadSchedule(path string) (winterize.Schedule, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		return winterize.Schedule{}, false, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	schedule, err := winterize.LoadSchedule(f)
	return schedule, true, err
}
