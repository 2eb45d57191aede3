// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the response hardening for the Q&A API:
//   - SecurityHeaders sets baseline headers on every response, optional
//     browser feature policies, HSTS on HTTPS requests, and the list of
//     response headers browser clients may read.
//   - NoStore marks responses of the question and answer routes as
//     uncacheable, since a cached list or record goes stale on the next
//     write.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultHSTSMaxAge = 180 * 24 * time.Hour

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS    bool          // only applied to HTTPS requests
	HSTSMaxAge    time.Duration // defaults to 180 days when <= 0
	BrowserPolicy bool          // Permissions-Policy, X-Permitted-Cross-Domain-Policies
	ExposeHeaders []string      // readable by cross-origin browser clients
}

// SecurityHeaders returns a Gin middleware that adds hardening headers to
// each response and merges opt.ExposeHeaders into
// Access-Control-Expose-Headers without duplicating entries set upstream.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains"

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.BrowserPolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		if len(opt.ExposeHeaders) > 0 {
			h.Set("Access-Control-Expose-Headers", mergeHeaderList(h.Get("Access-Control-Expose-Headers"), opt.ExposeHeaders))
		}
		c.Next()
	}
}

// NoStore forbids caching of the responses it wraps.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Cache-Control", "no-store")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		c.Next()
	}
}

// mergeHeaderList appends add to the comma separated list cur, skipping
// names already present (case-insensitive).
func mergeHeaderList(cur string, add []string) string {
	out := make([]string, 0, len(add)+1)
	seen := make(map[string]struct{}, len(add)+1)
	for _, name := range append(strings.Split(cur, ","), add...) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return strings.Join(out, ", ")
}

// isHTTPS reports whether the request arrived over TLS directly or through a
// proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
