package shared

import (
	"errors"

	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/utils"
)

// StoreError converts a store error into the API error the client sees.
// resource names the entity in not-found messages.
func StoreError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case queries.Constraint(err) == queries.UsersEmailKey:
		return utils.Conflict("email already in use")
	case errors.Is(err, queries.ErrNotFound):
		return utils.NotFound(resource)
	case errors.Is(err, queries.ErrDuplicate):
		return utils.Conflict("%s already exists", resource)
	case errors.Is(err, queries.ErrOverlap):
		return utils.Conflict("%s overlaps an existing one", resource)
	case errors.Is(err, queries.ErrReference):
		return utils.BadRequest("%s references a record that does not exist", resource)
	}
	return err
}
