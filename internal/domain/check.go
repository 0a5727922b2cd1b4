package domain

// FileRule is one file probe that can implicate a condition. Exactly one of
// ExpectSHA1, RejectSHA1 or Require should be set.
type FileRule struct {
	// Path is relative to the install directory unless absolute.
	Path string `yaml:"path"`
	// ExpectSHA1 fires the rule when the file is present but its digest
	// differs (base install overwritten or partially removed).
	ExpectSHA1 string `yaml:"expect_sha1,omitempty"`
	// RejectSHA1 fires the rule when the file's digest matches any listed
	// known-bad hash (incompatible replacer installed).
	RejectSHA1 []string `yaml:"reject_sha1,omitempty"`
	// Require fires the rule when the file is missing entirely.
	Require bool `yaml:"require,omitempty"`
}

// CheckDefinition ties one or more file rules to a single logical
// compatibility problem. The key identifies the problem, not the file;
// several files may map to the same condition.
type CheckDefinition struct {
	Key      string     `yaml:"key"`
	Title    string     `yaml:"title"`
	Message  string     `yaml:"message"`
	Reminder string     `yaml:"reminder,omitempty"`
	Link     string     `yaml:"link,omitempty"`
	Files    []FileRule `yaml:"files"`
}

// CheckStatus indicates what the verification pass did for one check.
type CheckStatus string

const (
	// CheckOK means no problem was detected.
	CheckOK CheckStatus = "ok"
	// CheckPrompted means the problem was detected and the user was shown
	// the warning prompt.
	CheckPrompted CheckStatus = "prompted"
	// CheckSuppressed means the problem was detected but the throttle
	// policy withheld the prompt.
	CheckSuppressed CheckStatus = "suppressed"
	// CheckDetected means the problem was detected during a silent pass;
	// no prompt was shown and no budget was consumed.
	CheckDetected CheckStatus = "detected"
)

// CheckOutcome captures one check's result for the report.
type CheckOutcome struct {
	Key       string
	Title     string
	Status    CheckStatus
	Phase     WarningPhase
	Remaining uint32
	Accepted  bool
	Detail    string
}

// VerifyReport aggregates the outcomes of one verification pass.
type VerifyReport struct {
	Outcomes []CheckOutcome
}

// Triggered counts checks that detected a problem, prompted or not.
func (r VerifyReport) Triggered() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status != CheckOK {
			n++
		}
	}
	return n
}
