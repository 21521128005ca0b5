// Package events retrieves the full event history of Rachio devices.
//
// The Rachio API only returns events for a limited time range per call. Paginator works around this by walking
// back in time, one month at a time, from now until the device's creation date.
package events

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/clambin/rachio-tools/internal/rachio"
)

// ErrDeviceNotFound indicates the account has no device with the requested name
var ErrDeviceNotFound = errors.New("device not found")

// RachioClient contains the Rachio API calls needed by Paginator
type RachioClient interface {
	GetPerson(ctx context.Context) (rachio.Person, error)
	GetDeviceEvents(ctx context.Context, deviceID string, start, end time.Time) ([]rachio.DeviceEvent, error)
}

// Paginator retrieves all events for one or more devices.
type Paginator struct {
	Client RachioClient
	Logger *slog.Logger
	// Now returns the current time. If nil, time.Now is used.
	Now func() time.Time
}

// All returns the events of the device with the specified name (case-insensitive). If deviceName is blank,
// All returns the events of all devices registered to the account, device by device.
//
// The account is looked up before any events are returned. If that fails, the sequence yields a single error.
func (p Paginator) All(ctx context.Context, deviceName string) iter.Seq2[rachio.DeviceEvent, error] {
	return func(yield func(rachio.DeviceEvent, error) bool) {
		person, err := p.Client.GetPerson(ctx)
		if err != nil {
			yield(rachio.DeviceEvent{}, fmt.Errorf("person: %w", err))
			return
		}

		devices := person.Devices
		if deviceName != "" {
			device, ok := person.FindDevice(deviceName)
			if !ok {
				yield(rachio.DeviceEvent{}, fmt.Errorf("%q: %w", deviceName, ErrDeviceNotFound))
				return
			}
			devices = []rachio.Device{device}
		}

		for _, device := range devices {
			for event, err := range p.DeviceEvents(ctx, device) {
				if !yield(event, err) || err != nil {
					return
				}
			}
		}
	}
}

// DeviceEvents returns all events for the device, newest month first. Within a month, events are returned
// in the order received from the API.
//
// Each month is only queried once the events of the previous month have been consumed. If a call fails, or ctx
// is canceled, the sequence yields the error and stops.
func (p Paginator) DeviceEvents(ctx context.Context, device rachio.Device) iter.Seq2[rachio.DeviceEvent, error] {
	return func(yield func(rachio.DeviceEvent, error) bool) {
		now := p.now()
		logger := p.logger().With(slog.String("device", device.Name))
		lowerBound := LowerBound(device, now)
		logger.Debug("retrieving device events", slog.Time("from", lowerBound), slog.Time("to", now))

		for window := range Windows(now, lowerBound) {
			if err := ctx.Err(); err != nil {
				yield(rachio.DeviceEvent{}, err)
				return
			}
			events, err := p.Client.GetDeviceEvents(ctx, device.ID, window.Start, window.End)
			if err != nil {
				yield(rachio.DeviceEvent{}, fmt.Errorf("%s: %w", device.Name, err))
				return
			}
			logger.Info("device events found",
				slog.Int("count", len(events)),
				slog.String("month", window.Start.Format("2006-01")),
			)
			for _, event := range events {
				if event.DeviceID == "" {
					event.DeviceID = device.ID
				}
				if event.DeviceID != device.ID {
					logger.Warn("dropping event for another device", slog.String("id", event.ID), slog.String("deviceId", event.DeviceID))
					continue
				}
				if !yield(event, nil) {
					return
				}
			}
		}
	}
}

func (p Paginator) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p Paginator) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Collect returns all events in the sequence. It stops at the first error.
func Collect(events iter.Seq2[rachio.DeviceEvent, error]) ([]rachio.DeviceEvent, error) {
	var all []rachio.DeviceEvent
	for event, err := range events {
		if err != nil {
			return all, err
		}
		all = append(all, event)
	}
	return all, nil
}
