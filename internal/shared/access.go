package shared

import (
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
)

// CheckResidentAccess allows staff and the resident themself.
func CheckResidentAccess(p types.Principal, residentID string) error {
	if p.IsStaff() || p.OwnsResident(residentID) {
		return nil
	}
	return utils.Forbidden("you can only access your own records")
}

// ResidentFilter narrows list queries: residents always see their own rows,
// staff see whatever they asked for.
func ResidentFilter(p types.Principal, requested string) string {
	if p.Role == types.RoleResident {
		return p.SubjectID
	}
	return requested
}
