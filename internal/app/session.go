package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fabworks/caseboard/internal/adapter/postgres"
	caserepo "github.com/fabworks/caseboard/internal/adapter/postgres/cases"
	"github.com/fabworks/caseboard/internal/adapter/postgres/changefeed"
	historyrepo "github.com/fabworks/caseboard/internal/adapter/postgres/history"
	redispresence "github.com/fabworks/caseboard/internal/adapter/redisstore/presence"
	"github.com/fabworks/caseboard/internal/cache"
	"github.com/fabworks/caseboard/internal/command"
	"github.com/fabworks/caseboard/internal/config"
	"github.com/fabworks/caseboard/internal/domain"
	"github.com/fabworks/caseboard/internal/presence"
	"github.com/fabworks/caseboard/internal/realtime"
	casesvc "github.com/fabworks/caseboard/internal/service/cases"
	presencesvc "github.com/fabworks/caseboard/internal/service/presence"
	"github.com/fabworks/caseboard/pkg/ctxutil"
)

// feedBuffer absorbs notification bursts while the reconciler catches up.
const feedBuffer = 64

// Session is one running board session: the local mirror, the command
// dispatcher bound to it, the changefeed keeping the mirror current,
// and the presence heartbeat. Resources are opened in NewSession and
// released by Close in reverse order.
type Session struct {
	cfg *config.Config
	log *slog.Logger

	pool          *pgxpool.Pool
	presenceStore *redispresence.Store
	cases         *caserepo.Repo

	store      *cache.Store
	dispatcher *command.Dispatcher
	listener   *changefeed.Listener
	reconciler *realtime.Reconciler
	heartbeat  *presence.Heartbeat
}

// NewSession opens every resource a session needs and primes the local
// mirror from the store. On any failure it releases what it already
// opened and returns the error.
func NewSession(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Session, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	presenceStore, err := redispresence.New(ctx, cfg.Redis, cfg.Presence.TTL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open presence store: %w", err)
	}

	cases := caserepo.New(pool)
	history := historyrepo.New(pool)

	store := cache.New()
	working, err := cases.ListActive(ctx)
	if err != nil {
		presenceStore.Close()
		pool.Close()
		return nil, fmt.Errorf("prime mirror: %w", err)
	}
	store.Load(working)

	dispatcher := command.New(log)
	dispatcher.SetEnv(command.Env{
		CaseByID: store.Get,
		Cases:    store.All,
		Actor:    ctxutil.ActorFromCtx,
	})
	casesvc.NewService(log, cases, history, postgres.NewTxManager(pool)).Register(dispatcher)
	presencesvc.NewService(log, presenceStore).Register(dispatcher)

	s := &Session{
		cfg:           cfg,
		log:           log.With("component", "session"),
		pool:          pool,
		presenceStore: presenceStore,
		cases:         cases,
		store:         store,
		dispatcher:    dispatcher,
		listener:      changefeed.NewListener(pool, log, feedBuffer),
		heartbeat: presence.New(presenceStore, cfg.Session.Actor, cfg.Session.Version,
			cfg.Presence.Interval, log),
	}
	s.reconciler = realtime.New(store, s, cases, log)

	return s, nil
}

// Run drives the session until ctx is canceled: the heartbeat beats,
// the changefeed listens, and the reconciler folds its notifications
// into the mirror. Run returns the listener's error if the feed died
// rather than being shut down.
func (s *Session) Run(ctx context.Context) error {
	s.log.InfoContext(ctx, "session started",
		slog.String("actor", s.cfg.Session.Actor),
		slog.Int("cases", s.store.Len()),
	)

	s.heartbeat.Start(ctx)
	defer s.heartbeat.Stop()

	feedErr := make(chan error, 1)
	go func() { feedErr <- s.listener.Run(ctx) }()

	// Blocks until ctx is done or the listener closes its channel.
	s.reconciler.Run(ctx, s.listener.Notifications())

	if err := <-feedErr; err != nil {
		return fmt.Errorf("changefeed: %w", err)
	}
	return nil
}

// Dispatcher exposes the session's command dispatcher to the host.
func (s *Session) Dispatcher() *command.Dispatcher {
	return s.dispatcher
}

// Cases is a snapshot of the session's local mirror.
func (s *Session) Cases() []domain.Case {
	return s.store.All()
}

// Close releases the session's resources in reverse acquisition order.
// A short detached context covers the presence sign-off.
func (s *Session) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.presenceStore.Remove(ctx, s.cfg.Session.Actor); err != nil {
		s.log.Warn("presence sign-off failed", slog.String("error", err.Error()))
	}
	if err := s.presenceStore.Close(); err != nil {
		s.log.Warn("close presence store", slog.String("error", err.Error()))
	}
	s.pool.Close()
}

// PendingUpdate implements realtime.UpdateNotifier. A force urgency
// re-primes the whole mirror from the store; lower urgencies only
// surface the notice.
func (s *Session) PendingUpdate(ctx context.Context, urgency domain.Urgency, note string) {
	switch urgency {
	case domain.UrgencyForce:
		s.log.WarnContext(ctx, "update required, reloading mirror", slog.String("note", note))
		working, err := s.cases.ListActive(ctx)
		if err != nil {
			s.log.ErrorContext(ctx, "mirror reload failed", slog.String("error", err.Error()))
			return
		}
		s.store.Load(working)
	case domain.UrgencyHigh:
		s.log.WarnContext(ctx, "update pending", slog.String("note", note))
	default:
		s.log.InfoContext(ctx, "update pending", slog.String("note", note))
	}
}
