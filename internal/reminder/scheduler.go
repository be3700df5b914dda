package reminder

import (
	"context"
	"time"

	"github.com/sadopc/maya/internal/store"
)

const (
	// DefaultPeriod is the poll period of the recurring check. Reminder
	// intervals are minutes-scale, so up to a period of drift before a
	// reminder fires is accepted.
	DefaultPeriod = time.Minute

	reminderTitle = "Time to drink water!"
	reminderBody  = "Remember to hydrate and log your intake."
)

// Config wires a Scheduler.
type Config struct {
	Settings *store.SettingsStore
	State    *store.ReminderStore
	Notifier Notifier
	Period   time.Duration    // defaults to DefaultPeriod
	Clock    func() time.Time // defaults to time.Now
}

// Scheduler waits Idle between checks and goes Due when the configured
// interval has elapsed since the last dispatch. A Due check attempts at
// most one dispatch, then records the check time and returns to Idle.
type Scheduler struct {
	settings *store.SettingsStore
	state    *store.ReminderStore
	notifier Notifier
	period   time.Duration
	clock    func() time.Time

	requested bool
}

// New returns a Scheduler with the provided config.
func New(cfg Config) *Scheduler {
	if cfg.Period <= 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Scheduler{
		settings: cfg.Settings,
		state:    cfg.State,
		notifier: cfg.Notifier,
		period:   cfg.Period,
		clock:    cfg.Clock,
	}
}

// Check runs one poll cycle and reports whether the interval crossing
// was reached. Interval changes take effect here, on the next check;
// they never fire retroactively.
func (s *Scheduler) Check() bool {
	now := s.clock()
	interval := time.Duration(s.settings.Current().ReminderIntervalMin) * time.Minute
	if interval <= 0 {
		return false
	}
	if now.Sub(s.state.LastFired()) < interval {
		return false
	}

	s.dispatch()
	// Advance only after the dispatch attempt, whether or not the
	// notifier could deliver it.
	s.state.SetLastFired(now)
	return true
}

func (s *Scheduler) dispatch() {
	auth := s.notifier.Authorization()
	if auth == AuthorizationUnasked && !s.requested {
		s.requested = true
		auth = s.notifier.RequestAuthorization()
	}
	if auth != AuthorizationGranted {
		// Denied or still unasked: skip silently, never fatal.
		return
	}
	_ = s.notifier.Dispatch(reminderTitle, reminderBody)
}

// Run polls until ctx is canceled. The check is cheap and synchronous;
// restarting later resumes from the persisted last-fired timestamp.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check()
		}
	}
}
