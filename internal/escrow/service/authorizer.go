package service

import (
	"fmt"

	"github.com/goodnatureofminers/escrow7000-backend/internal/escrow/model"
)

// OwnerAuthorizer grants owner capabilities to the account stored as owner.
type OwnerAuthorizer struct{}

// AuthorizeOwner fails with ErrUnauthorized unless caller is the owner.
func (OwnerAuthorizer) AuthorizeOwner(owner, caller model.Account) error {
	if owner == "" || caller != owner {
		return fmt.Errorf("caller %q is not the owner: %w", caller, ErrUnauthorized)
	}
	return nil
}
