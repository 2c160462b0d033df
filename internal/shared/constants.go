package shared

import (
	"github.com/Conversly/community-api/internal/types"
	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware chain.
const (
	ContextKeyRequestID   = "requestId"
	ContextKeyPrincipal   = "principal"
	ContextKeyCommunityID = "communityId"
)

const (
	HeaderRequestID   = "X-Request-ID"
	HeaderCommunityID = "X-Community-ID"
)

// PrincipalFrom returns the caller stored by Authenticate.
func PrincipalFrom(c *gin.Context) types.Principal {
	if v, ok := c.Get(ContextKeyPrincipal); ok {
		if p, ok := v.(types.Principal); ok {
			return p
		}
	}
	return types.Principal{}
}

// CommunityFrom returns the community resolved by TenantScope.
func CommunityFrom(c *gin.Context) string {
	return c.GetString(ContextKeyCommunityID)
}
