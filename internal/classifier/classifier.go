// Package classifier derives a category and priority for a task from
// its free-text description. The primary path is a remote
// chat-completion call; a deterministic keyword matcher covers the
// remote call being unconfigured or failing.
package classifier

import (
	"context"
	"log"

	"taskbot/internal/model"
)

// Result is the classification outcome for one task description.
type Result struct {
	Category model.Category
	Priority model.Priority
}

// Remote is the remote classification wrapper. It either succeeds with
// a validated Result or reports why it could not.
type Remote interface {
	Classify(ctx context.Context, text string) (Result, error)
}

// Classifier composes the two classification steps: try the remote
// call, otherwise fall back to the rule-based matcher.
type Classifier struct {
	remote Remote
}

// New builds a classifier. A nil remote means no credential is
// configured and every input goes straight to the rules.
func New(remote Remote) *Classifier {
	return &Classifier{remote: remote}
}

// Classify is total: it never fails outward.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	if c.remote != nil {
		result, err := c.remote.Classify(ctx, text)
		if err == nil {
			return result
		}
		log.Printf("classifier: remote call failed, using rules: %v", err)
	}
	return RuleBased(text)
}
