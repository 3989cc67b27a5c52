package engine

import (
	"fmt"
	"regexp"
)

const (
	ReleaseModeDate   = "date"
	ReleaseModeSemver = "semver"
)

var (
	// date mode: YYYYMMDD.SEQ, e.g. 20240101.1
	dateTitlePattern = regexp.MustCompile(`^(\d{8})\.(\d+)$`)
	// semver mode: MAJOR.MINOR.PATCH, e.g. 1.2.3
	semverTitlePattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

const defaultIssueKeyPattern = `^([A-Z][A-Z0-9]+-[0-9]+):\s*(.+)$`

// PolicyOptions is the release policy for one repository.
type PolicyOptions struct {
	StableBranch      string `json:"stable_branch"`
	DevelopmentBranch string `json:"development_branch"`

	// ReleaseMode selects the title pattern: "date" or "semver".
	ReleaseMode string `json:"release_mode"`

	// ApproveReleases makes the bot submit APPROVE/REQUEST_CHANGES
	// reviews; when false it only comments.
	ApproveReleases bool `json:"approve_releases"`

	// SkipPendingStatus disables the pending commit status written
	// before validation starts.
	SkipPendingStatus bool `json:"skip_pending_status"`

	// IssueKeyPattern must capture the issue key and the description.
	IssueKeyPattern string `json:"issue_key_pattern"`
	// IssueBrowseURL is the issue tracker base URL. Empty disables
	// release note suggestions.
	IssueBrowseURL string `json:"issue_browse_url"`

	MergePollAttempts        int   `json:"merge_poll_attempts"`
	MergePollIntervalSeconds int64 `json:"merge_poll_interval_seconds"`
}

func (options *PolicyOptions) Complete() {
	if options.StableBranch == "" {
		options.StableBranch = "master"
	}
	if options.DevelopmentBranch == "" {
		options.DevelopmentBranch = "develop"
	}
	if options.ReleaseMode == "" {
		options.ReleaseMode = ReleaseModeDate
	}
	if options.IssueKeyPattern == "" {
		options.IssueKeyPattern = defaultIssueKeyPattern
	}
	if options.MergePollAttempts <= 0 {
		options.MergePollAttempts = 10
	}
	if options.MergePollIntervalSeconds <= 0 {
		options.MergePollIntervalSeconds = 3
	}
}

func (options *PolicyOptions) Validate() error {
	if options.ReleaseMode != ReleaseModeDate && options.ReleaseMode != ReleaseModeSemver {
		return fmt.Errorf("release mode [%s] not support", options.ReleaseMode)
	}
	if _, err := regexp.Compile(options.IssueKeyPattern); err != nil {
		return fmt.Errorf("issue key pattern error: %v", err)
	}
	return nil
}
