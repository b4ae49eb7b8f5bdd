package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/datawarden/datawarden/internal/contexts"
)

// Headers carrying the caller identity resolved by the edge proxy.
// The gateway trusts them as-is; authentication happens upstream.
const (
	HeaderUserID    = "X-DW-User-Id"
	HeaderPersona   = "X-DW-Persona"
	HeaderGroups    = "X-DW-Groups"
	HeaderSessionID = "X-DW-Session-Id"
)

var errMissingUserID = errors.New("missing " + HeaderUserID + " header")

// WithUserContext extracts the caller identity headers into the request
// context. A request without a user id is rejected here; a request with a
// missing or unknown persona passes through so the authorization gate can
// deny it with an audited reason.
func WithUserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := contexts.UserContext{
			UserID:    strings.TrimSpace(c.GetHeader(HeaderUserID)),
			Persona:   strings.TrimSpace(c.GetHeader(HeaderPersona)),
			SessionID: strings.TrimSpace(c.GetHeader(HeaderSessionID)),
		}

		if user.UserID == "" {
			AbortWithError(c, http.StatusUnauthorized, errMissingUserID)
			return
		}

		if groups := c.GetHeader(HeaderGroups); groups != "" {
			user.Groups = lo.FilterMap(strings.Split(groups, ","), func(g string, _ int) (string, bool) {
				g = strings.TrimSpace(g)
				return g, g != ""
			})
		}

		ctx := contexts.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
