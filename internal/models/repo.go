package models

import (
	"strings"
	"time"
)

// RepoRef identifies the GitHub repository every tool call targets.
// Both halves are non‑empty once a request has been resolved.
type RepoRef struct {
	Owner string `json:"owner" bson:"owner"`
	Name  string `json:"name"  bson:"name"`
}

// FullName returns the "owner/name" form GitHub uses in URLs and search qualifiers.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether either half of the identifier is missing.
func (r RepoRef) IsZero() bool {
	return strings.TrimSpace(r.Owner) == "" || strings.TrimSpace(r.Name) == ""
}

// RecentRepo is one entry of the recent‑repository history.
type RecentRepo struct {
	ID            string    `bson:"_id"             json:"id"` // "owner/name"
	Owner         string    `bson:"owner"           json:"owner"`
	Name          string    `bson:"name"            json:"name"`
	QueryCount    int       `bson:"query_count"     json:"query_count"`
	LastQueriedAt time.Time `bson:"last_queried_at" json:"last_queried_at"`
}
