package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dartisan/webscraper"
	wshttp "github.com/dartisan/webscraper/http"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// scheduleParser accepts five-field expressions and descriptors such as @hourly.
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	g := deps.Globals

	var sched *cron.Cron
	if retention := g.Retention(); retention > 0 {
		var err error
		if sched, err = newSweepScheduler(deps.Ctx, g.SweepSchedule, deps.Store, retention, deps.Logger); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
	}

	s := wshttp.NewServer()
	s.Addr = g.Addr
	s.Provider = g.Provider
	s.Retention = g.Retention()
	s.AllowedOrigins = g.AllowedOrigins
	s.Logger = deps.Logger
	s.ScrapeService = deps.Scraper
	s.DataExtractor = deps.Extractor
	s.DocumentStore = deps.Store

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return fmt.Errorf("failed to listen on %s: %w", g.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	eg, ctx := errgroup.WithContext(deps.Ctx)
	if sched != nil {
		eg.Go(func() error {
			sched.Start()
			<-ctx.Done()
			<-sched.Stop().Done()
			return nil
		})
	}
	eg.Go(func() error {
		<-ctx.Done()
		return s.Close()
	})
	return eg.Wait()
}

// newSweepScheduler returns a scheduler that removes documents older than
// retention on every tick of schedule. Returns EINVALID for a malformed
// schedule.
func newSweepScheduler(ctx context.Context, schedule string, store webscraper.DocumentStore, retention time.Duration, logger *slog.Logger) (*cron.Cron, error) {
	every, err := scheduleParser.Parse(schedule)
	if err != nil {
		return nil, webscraper.Errorf(webscraper.EINVALID, "invalid sweep schedule %q: %v", schedule, err)
	}

	sched := cron.New(
		cron.WithParser(scheduleParser),
		cron.WithLogger(cronLogger{logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
	)
	sched.Schedule(every, cron.FuncJob(func() {
		if _, err := store.Sweep(ctx, retention); err != nil {
			logger.Error("scheduled sweep failed", "err", err)
		}
	}))
	return sched, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}
