// Package crawler turns per-bank payloads from heterogeneous upstream sources
// into canonical tiered savings offers.
package crawler

import "github.com/ytoklu/mevduat-compare/internal/pkg/model"

// Profile is the static identity of one source bank.
type Profile struct {
	ID          string
	Name        string
	Type        string
	ProductName string
	Website     string
}

// Request describes how the retrieval collaborator should fetch a source's raw
// payload. Method defaults to GET.
type Request struct {
	URL         string
	Method      string
	Body        string
	ContentType string
}

// SourceAdapter normalizes exactly one publisher's payload shape. Normalize must
// tolerate arbitrary input: candidates that cannot be parsed are dropped one by
// one, and a payload that yields nothing comes back as an empty list. It never
// panics and never reports an error; empty output is the failure signal.
type SourceAdapter interface {
	Profile() Profile
	Request() Request
	Normalize(raw []byte) []model.Tier
}
