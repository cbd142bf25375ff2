package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// OperatorID extracts the authenticated operator's numeric ID from the
// context set by JWTAuth.  The second return is false for anonymous
// requests or malformed claims.  JWT numeric claims decode as float64,
// so both representations are handled.
func OperatorID(c echo.Context) (uint64, bool) {
	switch v := c.Get("operator_id").(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// rateKeyIdentity returns a stable identity for rate-limit keys:
// the operator ID when authenticated, "guest" otherwise.
func rateKeyIdentity(c echo.Context) string {
	if id, ok := OperatorID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "guest"
}
