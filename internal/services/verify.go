package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/afevis/modcheck/internal/domain"
	"github.com/afevis/modcheck/internal/ports"
)

// VerifyService runs the configured installation checks once, consulting the
// warning throttle before surfacing anything to the user. It runs to
// completion before the host game proceeds; nothing in it may fail startup.
type VerifyService struct {
	ConfigProvider ports.ConfigProvider
	CacheStore     ports.WarningCacheStore
	Checker        ports.FileFingerprintChecker
	Prompter       ports.UserPrompter
	Links          ports.LinkOpener
	Env            ports.EnvironmentInfo
	History        ports.WarningHistoryRepository
	Logger         ports.Logger
	Now            func() time.Time
}

// Run executes one verification pass and returns a report of every check.
// A nil Prompter makes the pass silent: problems are reported but no prompt
// is shown and no warning budget is consumed.
func (s *VerifyService) Run(ctx context.Context) (domain.VerifyReport, error) {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.VerifyReport{}, fmt.Errorf("load configuration: %w", err)
	}

	installDir := s.resolveInstallDir(cfg)
	cache := s.CacheStore.Load()
	throttle := &Throttle{
		Cache:  &cache,
		Policy: cfg.WarningPolicy(),
		Store:  s.CacheStore,
		Logger: s.Logger,
		Now:    s.Now,
	}
	throttle.Reconcile(domain.Fingerprint{
		InstallPath: installDir,
		InstallDate: s.Env.InstallTimestamp(),
	})

	var report domain.VerifyReport
	for _, check := range cfg.Checks {
		report.Outcomes = append(report.Outcomes, s.runCheck(installDir, check, throttle))
	}
	return report, nil
}

func (s *VerifyService) resolveInstallDir(cfg domain.Config) string {
	dir := cfg.InstallDir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

func (s *VerifyService) runCheck(installDir string, check domain.CheckDefinition, throttle *Throttle) domain.CheckOutcome {
	triggered, detail := s.evaluate(installDir, check)
	if !triggered {
		return domain.CheckOutcome{Key: check.Key, Title: check.Title, Status: domain.CheckOK}
	}

	phase := throttle.Phase(check.Key)
	remaining := throttle.WarningsRemaining(check.Key)
	s.Logger.Warn("installation problem detected", map[string]interface{}{
		"check":  check.Key,
		"detail": detail,
	})

	if s.Prompter == nil {
		return domain.CheckOutcome{
			Key: check.Key, Title: check.Title,
			Status: domain.CheckDetected,
			Phase:  phase, Remaining: remaining, Detail: detail,
		}
	}

	if !throttle.ShouldWarn(check.Key) {
		s.Logger.Debug("warning suppressed by throttle", map[string]interface{}{
			"check": check.Key,
			"phase": string(phase),
		})
		return domain.CheckOutcome{
			Key: check.Key, Title: check.Title,
			Status: domain.CheckSuppressed,
			Phase:  phase, Remaining: remaining, Detail: detail,
		}
	}

	accepted := false
	if ok, err := s.Prompter.Confirm(s.buildMessage(check, phase, remaining), check.Title); err != nil {
		s.Logger.Debug("prompt failed", map[string]interface{}{"check": check.Key, "error": err.Error()})
	} else {
		accepted = ok
	}
	if accepted && check.Link != "" && s.Links != nil {
		s.Links.Open(check.Link)
	}

	// Showing the prompt is what consumes budget, not the user's answer.
	entry := throttle.RecordWarning(check.Key)
	s.recordHistory(domain.WarningEvent{
		Timestamp:       time.Unix(int64(entry.LastShownUnix), 0),
		Key:             check.Key,
		Phase:           phase,
		RemainingBefore: remaining,
		Accepted:        accepted,
	})

	return domain.CheckOutcome{
		Key: check.Key, Title: check.Title,
		Status: domain.CheckPrompted,
		Phase:  phase, Remaining: remaining,
		Accepted: accepted, Detail: detail,
	}
}

// evaluate reports whether any of the check's file rules fires, with a short
// human-readable reason.
func (s *VerifyService) evaluate(installDir string, check domain.CheckDefinition) (bool, string) {
	for _, rule := range check.Files {
		path := rule.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(installDir, path)
		}
		switch {
		case rule.Require:
			if !s.Checker.Exists(path) {
				return true, fmt.Sprintf("required file missing: %s", rule.Path)
			}
		case rule.ExpectSHA1 != "":
			if s.Checker.Exists(path) && !s.Checker.MatchesDigest(path, rule.ExpectSHA1) {
				return true, fmt.Sprintf("unexpected content: %s", rule.Path)
			}
		case len(rule.RejectSHA1) > 0:
			if !s.Checker.Exists(path) {
				continue
			}
			for _, bad := range rule.RejectSHA1 {
				if s.Checker.MatchesDigest(path, bad) {
					return true, fmt.Sprintf("known-incompatible file: %s", rule.Path)
				}
			}
		}
	}
	return false, ""
}

// buildMessage produces phase-appropriate copy. The final initial-phase
// warning is called out as such, since the same commit that records it flips
// the condition into cooldown.
func (s *VerifyService) buildMessage(check domain.CheckDefinition, phase domain.WarningPhase, remaining uint32) string {
	body := check.Message
	switch {
	case phase == domain.PhaseCooldown:
		if check.Reminder != "" {
			body = check.Reminder
		}
	case remaining == 1:
		body += "\n\nThis is the final unconditional warning; future reminders will only appear occasionally."
	case remaining > 1:
		body += fmt.Sprintf("\n\nThis warning will be shown %d more times before becoming an occasional reminder.", remaining-1)
	}
	if check.Link != "" {
		body += "\n\nOpen the installation guide now?"
	}
	return body
}

func (s *VerifyService) recordHistory(event domain.WarningEvent) {
	if s.History == nil {
		return
	}
	if err := s.History.Record(event); err != nil {
		s.Logger.Debug("warning history not recorded", map[string]interface{}{"error": err.Error()})
	}
}
