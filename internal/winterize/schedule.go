package winterize

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/clambin/go-common/set"
	"github.com/clambin/rachio-tools/internal/rachio"
	"gopkg.in/yaml.v3"
)

// Schedule is the winterization schedule for a device: the zones to run, in order.
type Schedule struct {
	DeviceName string `yaml:"deviceName" mapstructure:"deviceName"`
	Steps      []Step `yaml:"zones" mapstructure:"zones"`
}

// Step runs a zone for a number of seconds and then waits before moving on to the next step.
type Step struct {
	ZoneName         string `yaml:"zoneName" mapstructure:"zoneName"`
	DurationSeconds  int    `yaml:"durationSeconds" mapstructure:"durationSeconds"`
	RestAfterSeconds int    `yaml:"restAfterSeconds" mapstructure:"restAfterSeconds"`
}

func (s Step) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

func (s Step) RestAfter() time.Duration {
	return time.Duration(s.RestAfterSeconds) * time.Second
}

// LoadSchedule reads a Schedule in YAML format.
func LoadSchedule(r io.Reader) (Schedule, error) {
	var schedule Schedule
	if err := yaml.NewDecoder(r).Decode(&schedule); err != nil {
		// an empty document is an empty schedule
		if errors.Is(err, io.EOF) {
			return Schedule{}, nil
		}
		return Schedule{}, fmt.Errorf("winterize schedule: %w", err)
	}
	return schedule, schedule.Validate()
}

// Validate checks that all steps name a zone and that no step has a negative duration.
func (s Schedule) Validate() error {
	var errs []error
	for i, step := range s.Steps {
		if step.ZoneName == "" {
			errs = append(errs, fmt.Errorf("step %d: missing zone name", i+1))
		}
		if step.DurationSeconds < 0 || step.RestAfterSeconds < 0 {
			errs = append(errs, fmt.Errorf("step %d: invalid duration", i+1))
		}
	}
	return errors.Join(errs...)
}

// Summary describes the overall schedule
type Summary struct {
	ZoneCount    int
	StepCount    int
	TotalRunTime time.Duration
}

// Summary returns the number of (distinct) zones, the number of steps and the time needed to run all steps.
//
// Zone names are compared case-insensitively, as they are when matched against the device's zones.
// TotalRunTime includes all steps, even those whose zone is later found to be missing on the device.
func (s Schedule) Summary() Summary {
	zones := set.New[string]()
	var total time.Duration
	for _, step := range s.Steps {
		zones.Add(strings.ToLower(step.ZoneName))
		total += step.Duration() + step.RestAfter()
	}
	return Summary{
		ZoneCount:    len(zones),
		StepCount:    len(s.Steps),
		TotalRunTime: total,
	}
}

// PlannedStep is a Step, resolved against a device's zones. If the zone does not exist on the device,
// ZoneID is blank and the step will be skipped.
type PlannedStep struct {
	Step
	ZoneID string
}

func (p PlannedStep) Skip() bool {
	return p.ZoneID == ""
}

// Plan resolves each step's zone on the device.
func (s Schedule) Plan(device rachio.Device) []PlannedStep {
	plan := make([]PlannedStep, len(s.Steps))
	for i, step := range s.Steps {
		plan[i].Step = step
		if zone, ok := device.FindZone(step.ZoneName); ok {
			plan[i].ZoneID = zone.ID
		}
	}
	return plan
}
