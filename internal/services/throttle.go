package services

import (
	"time"

	"github.com/afevis/modcheck/internal/domain"
	"github.com/afevis/modcheck/internal/ports"
)

// Throttle couples the pure warning policy with write-through persistence.
// ShouldWarn and WarningsRemaining never mutate; RecordWarning is the only
// mutating entry point and persists the whole cache immediately, so a crash
// loses at most the triggering event's own state change.
type Throttle struct {
	Cache  *domain.WarningCache
	Policy domain.WarningPolicy
	Store  ports.WarningCacheStore
	Logger ports.Logger
	Now    func() time.Time
}

func (t *Throttle) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// ShouldWarn reports whether the condition may be surfaced right now.
func (t *Throttle) ShouldWarn(key string) bool {
	return t.Policy.ShouldWarn(t.Cache.Entry(key), t.now())
}

// WarningsRemaining returns the unconditional initial-phase budget left for
// key. Pure query; used to build user-facing copy before a commit changes it.
func (t *Throttle) WarningsRemaining(key string) uint32 {
	return t.Policy.Remaining(t.Cache.Entry(key))
}

// Phase returns the throttle phase key is currently in.
func (t *Throttle) Phase(key string) domain.WarningPhase {
	return t.Policy.Phase(t.Cache.Entry(key))
}

// RecordWarning consumes one unit of budget for key and persists the cache.
func (t *Throttle) RecordWarning(key string) domain.WarningEntry {
	entry := t.Cache.Record(key, t.Policy, t.now())
	t.persist()
	return entry
}

// Reconcile resets the cache when the install fingerprint changed on either
// field, persisting the fresh fingerprint immediately. Returns true when a
// reset happened.
func (t *Throttle) Reconcile(fp domain.Fingerprint) bool {
	if t.Cache.Matches(fp) {
		return false
	}
	if t.Logger != nil {
		t.Logger.Debug("resetting warning cache (environment changed)", map[string]interface{}{
			"old_path": t.Cache.InstallPath,
			"new_path": fp.InstallPath,
		})
	}
	t.Cache.Reset(fp)
	t.persist()
	return true
}

// persist is best-effort: the in-memory decision for the current run already
// happened, only future runs lose the updated counter.
func (t *Throttle) persist() {
	if t.Store == nil {
		return
	}
	if err := t.Store.Save(*t.Cache); err != nil && t.Logger != nil {
		t.Logger.Debug("warning cache not persisted", map[string]interface{}{"error": err.Error()})
	}
}
