package domain

// OpenTarget selects which field of a record is opened.
type OpenTarget string

// Available open targets.
const (
	// OpenTargetSrc opens the direct media link.
	OpenTargetSrc OpenTarget = "src"

	// OpenTargetID opens the identifier, which is the Tenor page URL.
	OpenTargetID OpenTarget = "id"
)

// IsValid returns true if the target is recognised.
func (t OpenTarget) IsValid() bool {
	return t == OpenTargetSrc || t == OpenTargetID
}

// String returns the string representation.
func (t OpenTarget) String() string {
	return string(t)
}

// OpenOptions configures a bulk open.
type OpenOptions struct {
	// Target selects the field to open. Empty means OpenTargetSrc.
	Target OpenTarget

	// Rate is the number of links launched per second. Zero or less
	// disables pacing.
	Rate float64

	// Burst is how many links may launch back to back.
	Burst int

	// DryRun records what would be opened without opening anything.
	DryRun bool
}

// LinkFailure records a link that could not be launched.
type LinkFailure struct {
	ID     string `json:"id" yaml:"id"`
	Link   string `json:"link" yaml:"link"`
	Reason string `json:"reason" yaml:"reason"`
}

// DispatchReport summarises a bulk open.
type DispatchReport struct {
	// Requested is the number of records in the set.
	Requested int `json:"requested" yaml:"requested"`

	// Opened lists the links handed to the opener, in launch order.
	Opened []string `json:"opened" yaml:"opened"`

	// Failed lists links that could not be launched.
	Failed []LinkFailure `json:"failed,omitempty" yaml:"failed,omitempty"`

	// DryRun is true when nothing was actually opened.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}
