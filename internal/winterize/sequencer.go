// Package winterize runs a winterization schedule on a Rachio device.
//
// Winterizing a sprinkler system means blowing compressed air through each zone to clear it of water. To do this,
// each zone needs to be opened in turn, with some rest in between to let the compressor recover.
// Once all zones are done, the device is hibernated.
package winterize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/clambin/rachio-tools/internal/notifier"
	"github.com/clambin/rachio-tools/internal/rachio"
)

var (
	ErrEmptySchedule  = errors.New("no winterize schedule found")
	ErrDeviceNotFound = errors.New("device not found")
	ErrNoZones        = errors.New("no zones found for device")
)

// RachioClient contains the Rachio API calls needed by the Sequencer
type RachioClient interface {
	GetPerson(ctx context.Context) (rachio.Person, error)
	StartZone(ctx context.Context, zoneID string, duration time.Duration) error
	SetDeviceHibernate(ctx context.Context, deviceID string, hibernate bool) error
}

// Sequencer runs a winterize Schedule.
type Sequencer struct {
	Client   RachioClient
	Notifier notifier.Notifier
	Logger   *slog.Logger
	// Wait blocks for the specified duration, or until ctx is canceled. Defaults to Sleep.
	Wait func(ctx context.Context, d time.Duration) error

	lock   sync.RWMutex
	status Status
}

func New(client RachioClient, n notifier.Notifier, logger *slog.Logger) *Sequencer {
	return &Sequencer{
		Client:   client,
		Notifier: n,
		Logger:   logger,
		Wait:     Sleep,
		status:   Status{State: Idle},
	}
}

// Prepare finds the schedule's device and resolves the zone of each step. It does not change anything on the device.
func (s *Sequencer) Prepare(ctx context.Context, schedule Schedule) (rachio.Device, []PlannedStep, error) {
	if len(schedule.Steps) == 0 {
		return rachio.Device{}, nil, ErrEmptySchedule
	}

	person, err := s.Client.GetPerson(ctx)
	if err != nil {
		return rachio.Device{}, nil, fmt.Errorf("person: %w", err)
	}

	device, ok := person.FindDevice(schedule.DeviceName)
	if !ok || device.ID == "" {
		return rachio.Device{}, nil, fmt.Errorf("%q: %w", schedule.DeviceName, ErrDeviceNotFound)
	}
	if len(device.Zones) == 0 {
		return rachio.Device{}, nil, fmt.Errorf("%q: %w", schedule.DeviceName, ErrNoZones)
	}
	return device, schedule.Plan(device), nil
}

// Run runs each step of the schedule in turn and then hibernates the device.
//
// Steps for a zone that does not exist on the device are skipped. If a zone cannot be started, or ctx is canceled,
// Run stops immediately, without hibernating the device.
func (s *Sequencer) Run(ctx context.Context, schedule Schedule) error {
	device, plan, err := s.Prepare(ctx, schedule)
	if err != nil {
		return err
	}

	summary := schedule.Summary()
	s.logger().Info("winterizing",
		slog.String("device", device.Name),
		slog.Int("zones", summary.ZoneCount),
		slog.Int("steps", summary.StepCount),
		slog.Duration("totalRunTime", summary.TotalRunTime),
	)
	s.notify("Winterizing "+device.Name, fmt.Sprintf("Winterizing %d zones over %d steps. Total run time will be %s.",
		summary.ZoneCount, summary.StepCount, summary.TotalRunTime,
	))
	s.start(device, summary)

	if err = s.runSteps(ctx, plan); err == nil {
		if err = s.Client.SetDeviceHibernate(ctx, device.ID, true); err != nil {
			err = fmt.Errorf("hibernate: %w", err)
		}
	}

	s.finish(err)
	if err != nil {
		s.notify("Winterizing "+device.Name+" failed", err.Error())
		return err
	}

	s.logger().Info("winterize complete", slog.String("device", device.Name))
	s.notify("Winterizing "+device.Name+" complete", "Device is now hibernating.")
	return nil
}

func (s *Sequencer) runSteps(ctx context.Context, plan []PlannedStep) error {
	for i, step := range plan {
		s.update(i, step)
		if step.Skip() {
			s.logger().Warn("zone not found on device. skipping", slog.String("zone", step.ZoneName))
			s.notify("Zone "+step.ZoneName+" not found", "Skipping step "+fmt.Sprint(i+1))
			continue
		}

		s.logger().Info("starting zone",
			slog.String("step", fmt.Sprintf("%d/%d", i+1, len(plan))),
			slog.String("zone", step.ZoneName),
			slog.Duration("duration", step.Duration()),
		)
		if err := s.Client.StartZone(ctx, step.ZoneID, step.Duration()); err != nil {
			return fmt.Errorf("zone %q: %w", step.ZoneName, err)
		}
		if err := s.wait(ctx, step.Duration()); err != nil {
			return err
		}

		s.logger().Info("zone complete. resting", slog.String("zone", step.ZoneName), slog.Duration("rest", step.RestAfter()))
		if err := s.wait(ctx, step.RestAfter()); err != nil {
			return err
		}
		s.completed(step)
	}
	return nil
}

func (s *Sequencer) wait(ctx context.Context, d time.Duration) error {
	wait := s.Wait
	if wait == nil {
		wait = Sleep
	}
	return wait(ctx, d)
}

func (s *Sequencer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Sequencer) notify(title, text string) {
	if s.Notifier != nil {
		s.Notifier.Notify(title, text)
	}
}

// Sleep waits for d to pass. If ctx is canceled first, Sleep returns ctx's error.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
