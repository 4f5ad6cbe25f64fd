package entities

import (
	"strings"

	gitforgeEntities "github.com/rios0rios0/gitforge/domain/entities"
)

const branchRefPrefix = "refs/heads/"

// MergeRequestInput is re-exported from gitforge. Branches are fully
// qualified refs; AutoComplete asks for the follow-up edit after creation.
type MergeRequestInput = gitforgeEntities.PullRequestInput

// MergeRequest is the merge request returned by GitLab.
type MergeRequest struct {
	IID          int64
	Title        string
	Description  string
	SourceBranch string
	TargetBranch string
	WebURL       string
	State        string
}

// BranchRef returns the fully qualified ref for a branch name.
// Names already carrying the refs/heads/ prefix are returned unchanged.
func BranchRef(name string) string {
	if strings.HasPrefix(name, branchRefPrefix) {
		return name
	}
	return branchRefPrefix + name
}
