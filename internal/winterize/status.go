package winterize

import (
	"time"

	"github.com/clambin/rachio-tools/internal/rachio"
)

type State string

const (
	Idle     State = "idle"
	Running  State = "running"
	Complete State = "complete"
	Failed   State = "failed"
)

// Status reports the progress of a winterize run.
type Status struct {
	State            State     `json:"state"`
	Device           string    `json:"device,omitempty"`
	Step             int       `json:"step,omitempty"`
	StepCount        int       `json:"stepCount,omitempty"`
	Zone             string    `json:"zone,omitempty"`
	Completed        int       `json:"completed"`
	Skipped          int       `json:"skipped"`
	RemainingSeconds int       `json:"remainingSeconds"`
	Started          time.Time `json:"started,omitzero"`
	Updated          time.Time `json:"updated,omitzero"`
	Err              string    `json:"error,omitempty"`
}

// Status returns the progress of the current (or last) run.
func (s *Sequencer) Status() Status {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.status.State == "" {
		return Status{State: Idle}
	}
	return s.status
}

func (s *Sequencer) start(device rachio.Device, summary Summary) {
	s.lock.Lock()
	defer s.lock.Unlock()
	now := time.Now()
	s.status = Status{
		State:            Running,
		Device:           device.Name,
		StepCount:        summary.StepCount,
		RemainingSeconds: int(summary.TotalRunTime.Seconds()),
		Started:          now,
		Updated:          now,
	}
}

func (s *Sequencer) update(index int, step PlannedStep) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.status.Step = index + 1
	s.status.Zone = step.ZoneName
	if step.Skip() {
		s.status.Skipped++
		s.status.RemainingSeconds = max(0, s.status.RemainingSeconds-int((step.Duration()+step.RestAfter()).Seconds()))
	}
	s.status.Updated = time.Now()
}

func (s *Sequencer) completed(step PlannedStep) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.status.Completed++
	s.status.RemainingSeconds = max(0, s.status.RemainingSeconds-int((step.Duration()+step.RestAfter()).Seconds()))
	s.status.Updated = time.Now()
}

func (s *Sequencer) finish(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.status.State = Complete
	if err != nil {
		s.status.State = Failed
		s.status.Err = err.Error()
	}
	s.status.Zone = ""
	s.status.Updated = time.Now()
}
