package domain

import "fmt"

// FindCheckByKey searches for a check definition by its condition key.
// Returns the definition and true if found, empty definition and false otherwise.
func (c *Config) FindCheckByKey(key string) (CheckDefinition, bool) {
	for _, check := range c.Checks {
		if check.Key == key {
			return check, true
		}
	}
	return CheckDefinition{}, false
}

// HasCheck checks if a check with the given condition key is configured.
func (c *Config) HasCheck(key string) bool {
	_, exists := c.FindCheckByKey(key)
	return exists
}

// ValidateConsistency verifies the configuration is internally coherent:
// unique non-empty condition keys, well-formed digests, and at least one
// file rule per check.
func (c *Config) ValidateConsistency() error {
	seen := make(map[string]bool, len(c.Checks))
	for _, check := range c.Checks {
		if check.Key == "" {
			return fmt.Errorf("check %q has no condition key", check.Title)
		}
		if seen[check.Key] {
			return fmt.Errorf("duplicate condition key %s", check.Key)
		}
		seen[check.Key] = true

		if len(check.Files) == 0 {
			return fmt.Errorf("check %s has no file rules", check.Key)
		}
		for _, rule := range check.Files {
			if err := rule.validate(); err != nil {
				return fmt.Errorf("check %s: %w", check.Key, err)
			}
		}
	}
	return nil
}

func (r FileRule) validate() error {
	if r.Path == "" {
		return fmt.Errorf("file rule has no path")
	}
	kinds := 0
	if r.ExpectSHA1 != "" {
		kinds++
		if !validSHA1Hex(r.ExpectSHA1) {
			return fmt.Errorf("invalid expect_sha1 for %s", r.Path)
		}
	}
	if len(r.RejectSHA1) > 0 {
		kinds++
		for _, digest := range r.RejectSHA1 {
			if !validSHA1Hex(digest) {
				return fmt.Errorf("invalid reject_sha1 for %s", r.Path)
			}
		}
	}
	if r.Require {
		kinds++
	}
	if kinds != 1 {
		return fmt.Errorf("rule for %s must set exactly one of expect_sha1, reject_sha1, require", r.Path)
	}
	return nil
}

func validSHA1Hex(digest string) bool {
	if len(digest) != 40 {
		return false
	}
	for _, ch := range digest {
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
