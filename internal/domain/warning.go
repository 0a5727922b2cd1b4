package domain

import "time"

const secondsPerDay = 86400

// WarningPhase identifies which leg of the throttle policy a condition is in.
type WarningPhase string

const (
	// PhaseInitial covers the first InitialWarnings occurrences, always shown.
	PhaseInitial WarningPhase = "initial"
	// PhaseCooldown rate-limits reminders to at most one per CooldownDays.
	PhaseCooldown WarningPhase = "cooldown"
)

// WarningEntry is the persisted throttle state for one condition key.
type WarningEntry struct {
	// ShownCount is the total number of times the condition was surfaced.
	// Never decreases.
	ShownCount uint32
	// LastShownUnix is the epoch second of the most recent prompt; 0 means
	// the condition was never shown.
	LastShownUnix uint64
	// InitialPhaseDone flips to true when the initial budget is exhausted.
	// One-way transition.
	InitialPhaseDone bool
}

// Fingerprint is the {install path, install date} pair used to detect a
// materially different installation.
type Fingerprint struct {
	InstallPath string
	InstallDate string
}

// WarningCache is the process-durable throttle store, one per installation.
// Absence of a key means "never warned, full budget available".
type WarningCache struct {
	InstallPath string
	InstallDate string
	Entries     map[string]WarningEntry
}

// NewWarningCache returns an empty cache ready for use.
func NewWarningCache() WarningCache {
	return WarningCache{Entries: make(map[string]WarningEntry)}
}

// Entry returns the stored state for key, or the zero entry when unseen.
func (c *WarningCache) Entry(key string) WarningEntry {
	return c.Entries[key]
}

// Fingerprint returns the environment fingerprint persisted with the cache.
func (c *WarningCache) Fingerprint() Fingerprint {
	return Fingerprint{InstallPath: c.InstallPath, InstallDate: c.InstallDate}
}

// Matches reports whether the stored fingerprint equals fp on both fields.
func (c *WarningCache) Matches(fp Fingerprint) bool {
	return c.InstallPath == fp.InstallPath && c.InstallDate == fp.InstallDate
}

// Reset clears all entries and stores fp as the new fingerprint. Used when
// the game was reinstalled or moved and old counters stopped being a
// meaningful signal.
func (c *WarningCache) Reset(fp Fingerprint) {
	c.InstallPath = fp.InstallPath
	c.InstallDate = fp.InstallDate
	c.Entries = make(map[string]WarningEntry)
}

// Record consumes one unit of warning budget for key: increments the shown
// count, stamps now, and flips the entry into cooldown when this event
// exhausts the initial budget. Returns the updated entry.
func (c *WarningCache) Record(key string, policy WarningPolicy, now time.Time) WarningEntry {
	entry := c.Entry(key)
	if !entry.InitialPhaseDone && entry.ShownCount+1 >= policy.InitialWarnings {
		// The last initial-phase warning performs the transition, atomically
		// with its own count increment.
		entry.InitialPhaseDone = true
	}
	entry.ShownCount++
	entry.LastShownUnix = uint64(now.Unix())
	if c.Entries == nil {
		c.Entries = make(map[string]WarningEntry)
	}
	c.Entries[key] = entry
	return entry
}

// WarningPolicy is the immutable throttle configuration. It is not persisted.
//
// CooldownDays == 0 degenerates to "never remind again after the initial
// phase", the policy used by earlier revisions of the cache format.
type WarningPolicy struct {
	InitialWarnings uint32
	CooldownDays    uint32
}

// Phase returns the state-machine leg the entry is currently in.
func (p WarningPolicy) Phase(entry WarningEntry) WarningPhase {
	if entry.InitialPhaseDone {
		return PhaseCooldown
	}
	return PhaseInitial
}

// Remaining returns how many unconditional initial-phase shows are left.
// Zero for entries already in cooldown.
func (p WarningPolicy) Remaining(entry WarningEntry) uint32 {
	if entry.InitialPhaseDone {
		return 0
	}
	used := entry.ShownCount
	if used > p.InitialWarnings {
		used = p.InitialWarnings
	}
	return p.InitialWarnings - used
}

// ShouldWarn reports whether the condition may be surfaced at time now.
// Pure query; recording the event is the caller's separate step.
func (p WarningPolicy) ShouldWarn(entry WarningEntry, now time.Time) bool {
	if !entry.InitialPhaseDone {
		return p.Remaining(entry) > 0
	}
	if entry.LastShownUnix == 0 {
		// Cooldown entry that was somehow never shown: warn.
		return true
	}
	if p.CooldownDays == 0 {
		return false
	}
	nowUnix := uint64(now.Unix())
	if nowUnix < entry.LastShownUnix {
		// Clock moved backwards; wait it out rather than underflow.
		return false
	}
	return nowUnix-entry.LastShownUnix >= uint64(p.CooldownDays)*secondsPerDay
}

// WarningEvent is one surfaced warning, recorded in the history log.
type WarningEvent struct {
	Timestamp       time.Time
	Key             string
	Phase           WarningPhase
	RemainingBefore uint32
	Accepted        bool
}
