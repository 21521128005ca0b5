package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clambin/rachio-tools/internal/rachio"
	"github.com/clambin/rachio-tools/internal/winterize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ErrZoneNotFound = errors.New("zone not found")

var (
	startZoneCmd = cobra.Command{
		Use:   "start-zone",
		Short: "Run a zone for a given duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			device, _ := cmd.Flags().GetString("device")
			zone, _ := cmd.Flags().GetString("zone")
			duration, _ := cmd.Flags().GetDuration("duration")
			return newApp(viper.GetViper(), slog.Default()).startZone(cmd.Context(), device, zone, duration)
		},
	}
	setDeviceHibernateCmd = cobra.Command{
		Use:   "set-device-hibernate",
		Short: "Hibernate or activate a device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			device, _ := cmd.Flags().GetString("device")
			hibernate, _ := cmd.Flags().GetBool("hibernate")
			return newApp(viper.GetViper(), slog.Default()).setDeviceHibernate(cmd.Context(), device, hibernate)
		},
	}
)

func init() {
	startZoneCmd.Flags().String("device", "", "Device name (default: winterize.deviceName)")
	startZoneCmd.Flags().String("zone", "", "Zone name")
	startZoneCmd.Flags().Duration("duration", time.Minute, "How long to run the zone")
	_ = startZoneCmd.MarkFlagRequired("zone")

	setDeviceHibernateCmd.Flags().String("device", "", "Device name (default: winterize.deviceName)")
	setDeviceHibernateCmd.Flags().Bool("hibernate", false, "Hibernate the device. If false, the device is activated")
}

func (a *app) findDevice(ctx context.Context, c *rachio.Client, name string) (rachio.Device, error) {
	if name = a.deviceName(name); name == "" {
		return rachio.Device{}, fmt.Errorf("no device specified: %w", rachio.ErrMissingConfiguration)
	}
	person, err := c.GetPerson(ctx)
	if err != nil {
		return rachio.Device{}, fmt.Errorf("person: %w", err)
	}
	device, ok := person.FindDevice(name)
	if !ok {
		return rachio.Device{}, fmt.Errorf("%q: %w", name, winterize.ErrDeviceNotFound)
	}
	return device, nil
}

func (a *app) startZone(ctx context.Context, deviceName, zoneName string, duration time.Duration) error {
	if duration < time.Second {
		return fmt.Errorf("invalid duration: %s", duration)
	}
	c, err := a.client()
	if err != nil {
		return err
	}
	return a.run(ctx, nil, func(ctx context.Context) error {
		device, err := a.findDevice(ctx, c, deviceName)
		if err != nil {
			return err
		}
		zone, ok := device.FindZone(zoneName)
		if !ok {
			return fmt.Errorf("%q: %w", zoneName, ErrZoneNotFound)
		}
		if err = c.StartZone(ctx, zone.ID, duration); err != nil {
			return fmt.Errorf("start zone: %w", err)
		}
		a.logger.Info("zone started", "device", device.Name, "zone", zone.Name, "duration", duration)
		return nil
	})
}

func (a *app) setDeviceHibernate(ctx context.Context, deviceName string, hibernate bool) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	return a.run(ctx, nil, func(ctx context.Context) error {
		device, err := a.findDevice(ctx, c, deviceName)
		if err != nil {
			return err
		}
		if err = c.SetDeviceHibernate(ctx, device.ID, hibernate); err != nil {
			return fmt.Errorf("set device hibernate: %w", err)
		}
		status := "active"
		if hibernate {
			status = "hibernate"
		}
		a.logger.Info("device updated", "device", device.Name, "status", status)
		return nil
	})
}
