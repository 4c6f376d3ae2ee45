package expiry

import (
	"context"
	"sync"
	"time"

	"github.com/klokku/eventcalendar/internal/utils"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

const DefaultInterval = 60 * time.Second

// Expirer removes events that ended at or before now.
type Expirer interface {
	SweepExpired(ctx context.Context, now time.Time) int
}

// Sweeper periodically removes expired events from an Expirer.
type Sweeper struct {
	store    Expirer
	clock    utils.Clock
	interval time.Duration
}

func NewSweeper(store Expirer, clock utils.Clock, interval time.Duration) *Sweeper {
	if interval < time.Second {
		interval = DefaultInterval
	}
	return &Sweeper{store: store, clock: clock, interval: interval}
}

// Tick runs a single sweep against the current time.
func (s *Sweeper) Tick(ctx context.Context) int {
	removed := s.store.SweepExpired(ctx, s.clock.Now())
	log.Tracef("Expiry sweep removed %d event(s)", removed)
	return removed
}

// Handle controls a running sweeper.
type Handle struct {
	cron   *cron.Cron
	cancel context.CancelFunc
	once   sync.Once
}

// Start schedules Tick every interval. Ticks missed while the process was
// suspended are not replayed, and a tick is skipped while the previous one
// is still running. The caller must Stop the returned handle.
func (s *Sweeper) Start() *Handle {
	logger := cronLogger{}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	ctx, cancel := context.WithCancel(context.Background())
	c.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		s.Tick(ctx)
	}))
	c.Start()
	log.Infof("Expiry sweeper started, interval %s", s.interval)

	return &Handle{cron: c, cancel: cancel}
}

// Stop cancels future ticks and waits for a running tick to finish.
// It is safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(func() {
		<-h.cron.Stop().Done()
		h.cancel()
		log.Info("Expiry sweeper stopped")
	})
}

// cronLogger routes scheduler logs to logrus.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).Trace("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.WithFields(fields(keysAndValues)).WithError(err).Error("cron: " + msg)
}

func fields(keysAndValues []interface{}) log.Fields {
	f := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		f[key] = keysAndValues[i+1]
	}
	return f
}
