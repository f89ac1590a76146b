package favorites

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"EstateView/records"
)

const sessionLoadTimeout = 10 * time.Second

// Manager picks the strategy for a request. Without an identity provider all
// callers share the local scope; with one, each actor gets a RemoteStore
// that stays cached while the actor keeps using it.
type Manager struct {
	identity Identity
	local    Store
	recs     records.Store
	sessions *ttlcache.Cache[string, *RemoteStore]
	loads    singleflight.Group
	logger   *slog.Logger
}

// NewLocalManager serves every caller from one local scope.
func NewLocalManager(local *LocalStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{local: local, logger: logger}
}

// NewRemoteManager serves each actor reported by identity from the favorite
// table of recs. Idle actors are evicted after sessionTTL.
func NewRemoteManager(identity Identity, recs records.Store, sessionTTL time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		identity: identity,
		recs:     recs,
		sessions: ttlcache.New(
			ttlcache.WithTTL[string, *RemoteStore](sessionTTL),
		),
		logger: logger,
	}
}

// Start runs expired-session cleanup until Stop. It blocks.
func (m *Manager) Start() {
	if m.sessions != nil {
		m.sessions.Start()
	}
}

func (m *Manager) Stop() {
	if m.sessions != nil {
		m.sessions.Stop()
	}
}

// Authenticated reports whether the remote per-user strategy is active.
func (m *Manager) Authenticated() bool { return m.identity != nil }

// For returns the Store serving ctx's caller. It fails only when a remote
// store has to be loaded and the backing store is unavailable.
func (m *Manager) For(ctx context.Context) (Store, error) {
	if m.identity == nil {
		return m.local, nil
	}
	actor, ok := m.identity.CurrentActor(ctx)
	if !ok {
		return anonymous{}, nil
	}

	if item := m.sessions.Get(actor.ID); item != nil {
		return item.Value(), nil
	}

	v, err, _ := m.loads.Do(actor.ID, func() (any, error) {
		if item := m.sessions.Get(actor.ID); item != nil {
			return item.Value(), nil
		}
		// Detached from the first caller; every waiter shares this load.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sessionLoadTimeout)
		defer cancel()
		s, err := NewRemoteStore(loadCtx, m.recs, actor.ID)
		if err != nil {
			return nil, err
		}
		m.sessions.Set(actor.ID, s, ttlcache.DefaultTTL)
		m.logger.Debug("favorites session loaded", "user", actor.ID, "count", len(s.List()))
		return s, nil
	})
	if err != nil {
		m.logger.Error("load favorites failed", "user", actor.ID, "err", err)
		return nil, fmt.Errorf("favorites for %s: %w", actor.ID, err)
	}
	return v.(*RemoteStore), nil
}
