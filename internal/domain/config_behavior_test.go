package domain_test

import (
	"testing"

	"github.com/afevis/modcheck/internal/domain"
)

const goodSHA1 = "11d03110d40b42adeafde2fa5f5cf65f27d6fc52"

// TestConfig_ValidateConsistency tests configuration consistency validation
func TestConfig_ValidateConsistency(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		wantError bool
	}{
		{
			name: "valid configuration",
			config: domain.Config{
				Checks: []domain.CheckDefinition{
					{Key: "base", Files: []domain.FileRule{{Path: "a.ctxr", ExpectSHA1: goodSHA1}}},
					{Key: "pack", Files: []domain.FileRule{{Path: "b.ctxr", RejectSHA1: []string{goodSHA1}}}},
					{Key: "missing", Files: []domain.FileRule{{Path: "c.ctxr", Require: true}}},
				},
			},
			wantError: false,
		},
		{
			name: "invalid: empty condition key",
			config: domain.Config{
				Checks: []domain.CheckDefinition{
					{Key: "", Title: "no key", Files: []domain.FileRule{{Path: "a", Require: true}}},
				},
			},
			wantError: true,
		},
		{
			name: "invalid: duplicate condition key",
			config: domain.Config{
				Checks: []domain.CheckDefinition{
					{Key: "base", Files: []domain.FileRule{{Path: "a", Require: true}}},
					{Key: "base", Files: []domain.FileRule{{Path: "b", Require: true}}},
				},
			},
			wantError: true,
		},
		{
			name: "invalid: check without file rules",
			config: domain.Config{
				Checks: []domain.CheckDefinition{{Key: "base"}},
			},
			wantError: true,
		},
		{
			name: "invalid: malformed digest",
			config: domain.Config{
				Checks: []domain.CheckDefinition{
					{Key: "base", Files: []domain.FileRule{{Path: "a", ExpectSHA1: "not-a-digest"}}},
				},
			},
			wantError: true,
		},
		{
			name: "invalid: rule with two kinds set",
			config: domain.Config{
				Checks: []domain.CheckDefinition{
					{Key: "base", Files: []domain.FileRule{{Path: "a", ExpectSHA1: goodSHA1, Require: true}}},
				},
			},
			wantError: true,
		},
		{
			name: "invalid: rule with no kind set",
			config: domain.Config{
				Checks: []domain.CheckDefinition{
					{Key: "base", Files: []domain.FileRule{{Path: "a"}}},
				},
			},
			wantError: true,
		},
		{
			name: "invalid: rule without path",
			config: domain.Config{
				Checks: []domain.CheckDefinition{
					{Key: "base", Files: []domain.FileRule{{Require: true}}},
				},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.ValidateConsistency()

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

// TestConfig_FindCheckByKey tests condition lookup
func TestConfig_FindCheckByKey(t *testing.T) {
	config := domain.Config{
		Checks: []domain.CheckDefinition{
			{Key: "base", Title: "Base install"},
			{Key: "pack", Title: "Texture pack"},
		},
	}

	check, found := config.FindCheckByKey("pack")
	if !found {
		t.Fatal("expected to find check 'pack'")
	}
	if check.Title != "Texture pack" {
		t.Errorf("got title %s, want Texture pack", check.Title)
	}

	if _, found := config.FindCheckByKey("nonexistent"); found {
		t.Error("found a check that is not configured")
	}
	if !config.HasCheck("base") {
		t.Error("HasCheck(base) = false, want true")
	}
}

// TestConfig_WarningPolicy tests policy conversion
func TestConfig_WarningPolicy(t *testing.T) {
	config := domain.Config{
		Policy: domain.PolicySettings{InitialWarnings: 5, CooldownDays: 7},
	}
	policy := config.WarningPolicy()
	if policy.InitialWarnings != 5 || policy.CooldownDays != 7 {
		t.Errorf("policy = %+v, want {5 7}", policy)
	}
}
