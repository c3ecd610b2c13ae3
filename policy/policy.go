// Package policy decides who may mutate posts. The functions are pure:
// the current identity is an explicit parameter, never ambient request
// state, so decisions are testable without a simulated request.
package policy

import (
	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/session"
)

// Policy evaluates access decisions for post mutations.
//
// Historically the site let any requester update or delete any post.
// EnforceOwnership switches on the evidently intended rule instead:
// only the original author may touch their post. The default keeps the
// historic behavior; see DESIGN.md.
type Policy struct {
	EnforceOwnership bool
}

// CanCreate requires an authenticated identity.
func (p Policy) CanCreate(identity *session.Identity) bool {
	return identity != nil
}

// CanUpdate reports whether the identity may overwrite the post.
func (p Policy) CanUpdate(identity *session.Identity, post *models.Post) bool {
	return p.canMutate(identity, post)
}

// CanDelete reports whether the identity may remove the post.
func (p Policy) CanDelete(identity *session.Identity, post *models.Post) bool {
	return p.canMutate(identity, post)
}

func (p Policy) canMutate(identity *session.Identity, post *models.Post) bool {
	if !p.EnforceOwnership {
		return true
	}
	// Legacy rows with a free-text author have no owner; they stay open to
	// anyone, which is exactly what the schema they came from allowed.
	if post.AuthorID == "" {
		return true
	}
	return identity != nil && identity.ID == post.AuthorID
}
