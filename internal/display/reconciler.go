// Package display reconciles a stream of lookup results into the stable
// state rendered by the persistent indicator.
package display

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/kendaniels/now-playing/internal/domain"
	"github.com/kendaniels/now-playing/internal/lookup"
	"github.com/kendaniels/now-playing/internal/normalize"
)

const stateKey = "nowplaying:display-state"

// Searcher is the lookup surface the reconciler polls.
type Searcher interface {
	Lookup(ctx context.Context, kind domain.LookupKind, opts lookup.Options) lookup.Result
}

// Reconciler owns the display state. It suppresses flicker by deferring
// updates whose artwork is still unresolved and by preserving the last good
// state across transient gaps. At most one lookup cycle is in flight at a
// time.
type Reconciler struct {
	logger   *zap.Logger
	searcher Searcher
	store    domain.Store

	inFlight atomic.Bool

	mu    sync.Mutex
	state domain.DisplayState
}

// NewReconciler creates a reconciler and hydrates it from the persisted
// display state so consumers do not start from a blank frame.
func NewReconciler(logger *zap.Logger, searcher Searcher, store domain.Store) *Reconciler {
	r := &Reconciler{
		logger:   logger,
		searcher: searcher,
		store:    store,
		state:    domain.DisplayState{Status: domain.StatusNoTrack},
	}
	r.hydrate()
	return r
}

// State returns the current display state.
func (r *Reconciler) State() domain.DisplayState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Refresh runs one lookup cycle and applies the result. A refresh arriving
// while another is outstanding is dropped, not queued, so display writes
// never overlap; the current state is returned unchanged in that case. A
// result that arrives after ctx is cancelled is likewise dropped.
func (r *Reconciler) Refresh(ctx context.Context) domain.DisplayState {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.logger.Debug("Refresh dropped, lookup already in flight")
		return r.State()
	}
	defer r.inFlight.Store(false)

	res := r.searcher.Lookup(ctx, domain.KindTrack, lookup.Options{AllowCacheFallback: true})

	// The consuming view may have been torn down while the lookup was in
	// flight; a late result must not mutate state.
	if ctx.Err() != nil {
		r.logger.Debug("Refresh result dropped after cancellation")
		return r.State()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.transition(r.state, res)
	if next != r.state {
		r.logger.Info("Display state changed",
			zap.String("status", string(next.Status)),
			zap.String("track", next.Track))
	}
	r.state = next
	return r.state
}

// transition computes the next display state from a lookup result.
func (r *Reconciler) transition(cur domain.DisplayState, res lookup.Result) domain.DisplayState {
	if res.Unsupported {
		return domain.DisplayState{Status: domain.StatusUnsupportedPlatform, Err: res.Err}
	}

	displaying := cur.Status == domain.StatusOK && cur.Track != ""

	if res.Payload != nil && res.Query != "" {
		next := domain.DisplayState{
			Track:      normalize.Title(res.Payload),
			Artist:     normalize.Artist(res.Payload),
			Album:      normalize.Album(res.Payload),
			ArtworkURL: normalize.ArtworkURL(res.Payload),
			Status:     domain.StatusOK,
		}
		if next.Track == "" {
			// An ok state must carry a track name.
			if displaying {
				return cur
			}
			return domain.DisplayState{Status: domain.StatusNoTrack}
		}

		// Same track on the same album with the artwork field gone: keep
		// the artwork already on screen.
		if next.ArtworkURL == "" && next.Album == cur.Album &&
			next.Track == cur.Track && next.Artist == cur.Artist {
			next.ArtworkURL = cur.ArtworkURL
		}

		// A new track whose artwork has not resolved yet: defer the whole
		// update rather than blanking the title while art is in flight.
		if next.ArtworkURL == "" && displaying {
			r.logger.Debug("Deferring display update until artwork resolves",
				zap.String("track", next.Track))
			return cur
		}

		r.persist(next)
		return next
	}

	// Nothing usable this cycle. Keep whatever is on screen; brief playback
	// pauses and transient probe errors must not cause visual churn.
	if displaying {
		return cur
	}

	if res.NotInstalled {
		return domain.DisplayState{Status: domain.StatusMissingProvider, Err: res.Err}
	}
	if res.Err != "" {
		return domain.DisplayState{Status: domain.StatusError, Err: res.Err}
	}
	return domain.DisplayState{Status: domain.StatusNoTrack}
}

// hydrate restores the last persisted ok state.
func (r *Reconciler) hydrate() {
	raw, ok, err := r.store.Get(stateKey)
	if err != nil || !ok {
		return
	}
	var s domain.DisplayState
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		r.logger.Debug("Discarding unreadable display state", zap.Error(err))
		return
	}
	if s.Status == domain.StatusOK && s.Track != "" {
		r.state = s
	}
}

// persist mirrors an ok state into the durable store, best-effort.
func (r *Reconciler) persist(s domain.DisplayState) {
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := r.store.Set(stateKey, string(data)); err != nil {
		r.logger.Warn("Failed to persist display state", zap.Error(err))
	}
}
