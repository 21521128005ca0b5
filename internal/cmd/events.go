package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clambin/rachio-tools/internal/events"
	"github.com/clambin/rachio-tools/internal/export"
	"github.com/clambin/rachio-tools/internal/rachio"
	"github.com/clambin/rachio-tools/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultEventsFile = "./out/rachio-events.{timestamp}.csv"

var (
	saveDeviceEventsCmd = cobra.Command{
		Use:   "save-device-events",
		Short: "Save the event history of a device to a file",
		Long: `Save the event history of a device to a file.

Events are written as CSV, unless the output file has a .json or .yaml extension.
If no device is specified, the events of all devices are saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFile, _ := cmd.Flags().GetString("out-file")
			device, _ := cmd.Flags().GetString("device")
			return newApp(viper.GetViper(), slog.Default()).saveDeviceEvents(cmd.Context(), device, outFile)
		},
	}
	saveDeviceEventsSQLCmd = cobra.Command{
		Use:   "save-device-events-sql",
		Short: "Save the event history of a device to a database",
		Long: `Save the event history of a device to a database table.

Events already in the table are left untouched. If no device is specified, the events of all devices are saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			device, _ := cmd.Flags().GetString("device")
			return newApp(viper.GetViper(), slog.Default()).saveDeviceEventsSQL(cmd.Context(), device)
		},
	}
)

func init() {
	saveDeviceEventsCmd.Flags().String("out-file", "", "Output file. Defaults to "+defaultEventsFile)
	saveDeviceEventsCmd.Flags().String("device", "", "Device name (default: winterize.deviceName)")
	saveDeviceEventsSQLCmd.Flags().String("device", "", "Device name (default: winterize.deviceName)")
}

func (a *app) paginator(c events.RachioClient) events.Paginator {
	return events.Paginator{
		Client: c,
		Logger: a.logger.With("component", "paginator"),
		Now:    a.now,
	}
}

func (a *app) saveDeviceEvents(ctx context.Context, device, outFile string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	return a.run(ctx, nil, func(ctx context.Context) error {
		all, err := events.Collect(a.paginator(c).All(ctx, a.deviceName(device)))
		if err != nil {
			return fmt.Errorf("device events: %w", err)
		}
		path, err := export.Write(export.ExpandPath(outFile, defaultEventsFile, a.now()), all)
		if err != nil {
			return fmt.Errorf("save device events: %w", err)
		}
		a.logger.Info("device events saved", "path", path, "events", len(all))
		return nil
	})
}

func (a *app) saveDeviceEventsSQL(ctx context.Context, device string) error {
	dsn := a.cfg.GetString("database.connectionString")
	if dsn == "" {
		return fmt.Errorf("database.connectionString: %w", rachio.ErrMissingConfiguration)
	}
	c, err := a.client()
	if err != nil {
		return err
	}
	s, err := store.Open(ctx, a.cfg.GetString("database.driver"), dsn, a.cfg.GetString("database.table"))
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() { _ = s.Close() }()

	return a.run(ctx, nil, func(ctx context.Context) error {
		if err := s.EnsureTable(ctx); err != nil {
			return err
		}
		all, err := events.Collect(a.paginator(c).All(ctx, a.deviceName(device)))
		if err != nil {
			return fmt.Errorf("device events: %w", err)
		}
		inserted, err := s.SaveEvents(ctx, all)
		if err != nil {
			return fmt.Errorf("save device events: %w", err)
		}
		a.logger.Info("device events saved", "table", s.Table(), "events", len(all), "inserted", inserted)
		return nil
	})
}
