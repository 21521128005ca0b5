package winterize_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/clambin/rachio-tools/internal/rachio"
	"github.com/clambin/rachio-tools/internal/winterize"
	"github.com/clambin/rachio-tools/internal/winterize/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	person = rachio.Person{
		ID: "person-1",
		Devices: []rachio.Device{
			{ID: "device-1", Name: "Backyard", Zones: []rachio.Zone{{ID: "zone-1", Name: "Front"}}},
			{ID: "device-2", Name: "Garage"},
		},
	}
	schedule = winterize.Schedule{
		DeviceName: "backyard",
		Steps: []winterize.Step{
			{ZoneName: "Front", DurationSeconds: 60, RestAfterSeconds: 10},
			{ZoneName: "Back", DurationSeconds: 30, RestAfterSeconds: 5},
		},
	}
)

type notification struct {
	title string
	text  string
}

type fakeNotifier struct {
	lock          sync.Mutex
	notifications []notification
}

func (f *fakeNotifier) Notify(title, text string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.notifications = append(f.notifications, notification{title: title, text: text})
}

type recordingWait struct {
	waits []time.Duration
	err   error
}

func (r *recordingWait) Wait(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	if r.err != nil {
		return r.err
	}
	return ctx.Err()
}

func TestSequencer_Run(t *testing.T) {
	c := mocks.NewRachioClient(t)
	c.EXPECT().GetPerson(mock.Anything).Return(person, nil).Once()
	c.EXPECT().StartZone(mock.Anything, "zone-1", time.Minute).Return(nil).Once()
	c.EXPECT().SetDeviceHibernate(mock.Anything, "device-1", true).Return(nil).Once()

	var n fakeNotifier
	var w recordingWait
	s := winterize.New(c, &n, slog.New(slog.DiscardHandler))
	s.Wait = w.Wait
	assert.Equal(t, winterize.Idle, s.Status().State)

	require.NoError(t, s.Run(t.Context(), schedule))

	// the missing zone is skipped without waiting
	assert.Equal(t, []time.Duration{time.Minute, 10 * time.Second}, w.waits)

	require.Len(t, n.notifications, 3)
	assert.Equal(t, "Winterizing 2 zones over 2 steps. Total run time will be 1m45s.", n.notifications[0].text)
	assert.Equal(t, "Zone Back not found", n.notifications[1].title)
	assert.Equal(t, "Winterizing Backyard complete", n.notifications[2].title)

	status := s.Status()
	assert.Equal(t, winterize.Complete, status.State)
	assert.Equal(t, "Backyard", status.Device)
	assert.Equal(t, 2, status.Step)
	assert.Equal(t, 2, status.StepCount)
	assert.Equal(t, 1, status.Completed)
	assert.Equal(t, 1, status.Skipped)
	assert.Zero(t, status.RemainingSeconds)
	assert.Empty(t, status.Err)

	assert.NoError(t, testutil.CollectAndCompare(s, strings.NewReader(`
# HELP rachio_winterize_remaining_seconds Estimated time left in the winterize run, in seconds
# TYPE rachio_winterize_remaining_seconds gauge
rachio_winterize_remaining_seconds{device="Backyard"} 0
# HELP rachio_winterize_running 1 if a winterize run is in progress
# TYPE rachio_winterize_running gauge
rachio_winterize_running{device="Backyard"} 0
# HELP rachio_winterize_step Current step of the winterize run
# TYPE rachio_winterize_step gauge
rachio_winterize_step{device="Backyard"} 2
# HELP rachio_winterize_steps Number of steps in the winterize schedule
# TYPE rachio_winterize_steps gauge
rachio_winterize_steps{device="Backyard"} 2
# HELP rachio_winterize_steps_completed Number of steps completed
# TYPE rachio_winterize_steps_completed gauge
rachio_winterize_steps_completed{device="Backyard"} 1
# HELP rachio_winterize_steps_skipped Number of steps skipped because the zone was not found on the device
# TYPE rachio_winterize_steps_skipped gauge
rachio_winterize_steps_skipped{device="Backyard"} 1
`)))
}

func TestSequencer_Run_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		schedule winterize.Schedule
		person   *rachio.Person
		err      error
	}{
		{
			name:     "empty schedule",
			schedule: winterize.Schedule{DeviceName: "Backyard"},
			err:      winterize.ErrEmptySchedule,
		},
		{
			name:     "unknown device",
			schedule: winterize.Schedule{DeviceName: "Side yard", Steps: schedule.Steps},
			person:   &person,
			err:      winterize.ErrDeviceNotFound,
		},
		{
			name:     "device without zones",
			schedule: winterize.Schedule{DeviceName: "Garage", Steps: schedule.Steps},
			person:   &person,
			err:      winterize.ErrNoZones,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mocks.NewRachioClient(t)
			if tt.person != nil {
				c.EXPECT().GetPerson(mock.Anything).Return(*tt.person, nil).Once()
			}
			var n fakeNotifier
			s := winterize.New(c, &n, slog.New(slog.DiscardHandler))
			s.Wait = func(context.Context, time.Duration) error { panic("unexpected wait") }

			assert.ErrorIs(t, s.Run(t.Context(), tt.schedule), tt.err)
			assert.Empty(t, n.notifications)
			assert.Equal(t, winterize.Idle, s.Status().State)
		})
	}
}

func TestSequencer_Run_StartZoneFails(t *testing.T) {
	c := mocks.NewRachioClient(t)
	c.EXPECT().GetPerson(mock.Anything).Return(person, nil).Once()
	c.EXPECT().StartZone(mock.Anything, "zone-1", time.Minute).Return(errors.New("fail")).Once()

	var n fakeNotifier
	var w recordingWait
	s := winterize.New(c, &n, slog.New(slog.DiscardHandler))
	s.Wait = w.Wait

	err := s.Run(t.Context(), schedule)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `zone "Front"`)
	assert.Empty(t, w.waits)

	status := s.Status()
	assert.Equal(t, winterize.Failed, status.State)
	assert.Equal(t, err.Error(), status.Err)
	assert.Equal(t, "Winterizing Backyard failed", n.notifications[len(n.notifications)-1].title)
}

func TestSequencer_Run_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	c := mocks.NewRachioClient(t)
	c.EXPECT().GetPerson(mock.Anything).Return(person, nil).Once()
	c.EXPECT().StartZone(mock.Anything, "zone-1", time.Minute).
		RunAndReturn(func(context.Context, string, time.Duration) error {
			cancel()
			return nil
		}).
		Once()

	var w recordingWait
	s := winterize.New(c, nil, slog.New(slog.DiscardHandler))
	s.Wait = w.Wait

	assert.ErrorIs(t, s.Run(ctx, schedule), context.Canceled)
	assert.Equal(t, []time.Duration{time.Minute}, w.waits)
	assert.Equal(t, winterize.Failed, s.Status().State)
}

func TestSequencer_Run_HibernateFails(t *testing.T) {
	c := mocks.NewRachioClient(t)
	c.EXPECT().GetPerson(mock.Anything).Return(person, nil).Once()
	c.EXPECT().StartZone(mock.Anything, "zone-1", time.Minute).Return(nil).Once()
	c.EXPECT().SetDeviceHibernate(mock.Anything, "device-1", true).Return(rachio.ErrNotFound).Once()

	var w recordingWait
	s := winterize.New(c, nil, slog.New(slog.DiscardHandler))
	s.Wait = w.Wait

	assert.ErrorIs(t, s.Run(t.Context(), schedule), rachio.ErrNotFound)
	assert.Equal(t, winterize.Failed, s.Status().State)
}

func TestSequencer_Run_Defaults(t *testing.T) {
	c := mocks.NewRachioClient(t)
	c.EXPECT().GetPerson(mock.Anything).Return(person, nil).Once()
	c.EXPECT().StartZone(mock.Anything, "zone-1", time.Duration(0)).Return(nil).Once()
	c.EXPECT().SetDeviceHibernate(mock.Anything, "device-1", true).Return(nil).Once()

	// no Logger, Notifier or Wait
	s := winterize.Sequencer{Client: c}
	require.NoError(t, s.Run(t.Context(), winterize.Schedule{
		DeviceName: "Backyard",
		Steps: []winterize.Step{
			{ZoneName: "Front"},
			{ZoneName: "Back"},
		},
	}))
	assert.Equal(t, winterize.Complete, s.Status().State)
}

func TestSequencer_Prepare(t *testing.T) {
	c := mocks.NewRachioClient(t)
	c.EXPECT().GetPerson(mock.Anything).Return(person, nil).Once()

	s := winterize.New(c, nil, slog.New(slog.DiscardHandler))
	device, plan, err := s.Prepare(t.Context(), schedule)
	require.NoError(t, err)
	assert.Equal(t, "device-1", device.ID)
	require.Len(t, plan, 2)
	assert.Equal(t, "zone-1", plan[0].ZoneID)
	assert.True(t, plan[1].Skip())
}

func TestSleep(t *testing.T) {
	assert.NoError(t, winterize.Sleep(t.Context(), 0))
	assert.NoError(t, winterize.Sleep(t.Context(), time.Millisecond))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, winterize.Sleep(ctx, time.Hour), context.Canceled)
}
