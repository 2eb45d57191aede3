// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the CORS guard. gin-contrib/cors answers disallowed
// origins with a bare 403 and accepts any preflight when all origins are
// allowed; the guard runs first and hands every policy violation to a
// caller-supplied rejection handler, so the error body follows the same
// envelope as every other failure.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSPolicy is the cross-origin posture enforced by CORSGuard. An empty
// Origins list admits every origin; Methods and Headers are always enforced
// on preflight requests.
type CORSPolicy struct {
	Origins []string
	Methods []string
	Headers []string
}

// CORSGuard aborts cross-origin requests that violate p by calling onReject:
//   - an Origin outside p.Origins (when the list is non-empty)
//   - a preflight asking for a method outside p.Methods
//   - a preflight asking for a header outside p.Headers
//
// Requests without an Origin header pass through unchanged.
func CORSGuard(p CORSPolicy, onReject gin.HandlerFunc) gin.HandlerFunc {
	origins := toSet(p.Origins, false)
	methods := toSet(p.Methods, true)
	headers := toSet(p.Headers, true)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		if len(origins) > 0 {
			if _, ok := origins[origin]; !ok {
				onReject(c)
				c.Abort()
				return
			}
		}
		if c.Request.Method == http.MethodOptions && !preflightAllowed(c.Request, methods, headers) {
			onReject(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func preflightAllowed(r *http.Request, methods, headers map[string]struct{}) bool {
	if m := r.Header.Get("Access-Control-Request-Method"); m != "" {
		if _, ok := methods[strings.ToLower(m)]; !ok {
			return false
		}
	}
	for _, line := range r.Header.Values("Access-Control-Request-Headers") {
		for _, h := range strings.Split(line, ",") {
			h = strings.ToLower(strings.TrimSpace(h))
			if h == "" {
				continue
			}
			if _, ok := headers[h]; !ok {
				return false
			}
		}
	}
	return true
}

func toSet(vals []string, fold bool) map[string]struct{} {
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if fold {
			v = strings.ToLower(v)
		}
		set[v] = struct{}{}
	}
	return set
}
