package biz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/datawarden/datawarden/internal/authz"
)

var ErrInternal = errors.New("server internal error, please try again later")

// AccessDeniedError reports resources the caller's persona may not touch.
// Handlers map it to a 403.
type AccessDeniedError struct {
	Kind      authz.ResourceKind
	Resources []string
	Reason    string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied to %s %s: %s", e.Kind, strings.Join(e.Resources, ", "), e.Reason)
}

// AsAccessDenied unwraps err into an AccessDeniedError if it is one.
func AsAccessDenied(err error) (*AccessDeniedError, bool) {
	var denied *AccessDeniedError
	if errors.As(err, &denied) {
		return denied, true
	}

	return nil, false
}
