package inspect

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/signalis/junction/mux"
)

// ErrInvalidFrameOption is returned when SecurityHeadersConfig.FrameOption is
// not one of the valid values: "DENY", "SAMEORIGIN", or empty string.
var ErrInvalidFrameOption = errors.New("security headers: frame option must be DENY, SAMEORIGIN, or empty")

// SecurityHeadersConfig configures the security headers inspector behaviour.
type SecurityHeadersConfig struct {
	// DisableContentTypeNosniff disables the X-Content-Type-Options: nosniff
	// header. The header is set by default (when false).
	DisableContentTypeNosniff bool

	// FrameOption sets the X-Frame-Options header value.
	// Valid values are "DENY", "SAMEORIGIN", or empty string to skip.
	// Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy sets the Referrer-Policy header value.
	// Defaults to "strict-origin-when-cross-origin".
	ReferrerPolicy string

	// HSTSMaxAge sets the max-age directive for the Strict-Transport-Security
	// header in seconds. When zero, the header is not set.
	HSTSMaxAge int

	// HSTSIncludeSubDomains appends the includeSubDomains directive to the
	// Strict-Transport-Security header. Only effective when HSTSMaxAge > 0.
	HSTSIncludeSubDomains bool

	// HSTSPreload appends the preload directive to the
	// Strict-Transport-Security header. Only effective when HSTSMaxAge > 0.
	HSTSPreload bool

	// ContentSecurityPolicy sets the Content-Security-Policy header.
	// When empty, the header is not set.
	ContentSecurityPolicy string

	// PermissionsPolicy sets the Permissions-Policy header.
	// When empty, the header is not set.
	PermissionsPolicy string
}

// SecurityHeaders returns an inspector whose response hook sets common
// security headers on every response passing through its node.
//
// It returns ErrInvalidFrameOption if FrameOption is set to a value other than
// "DENY", "SAMEORIGIN", or empty string.
func SecurityHeaders[T any](cfg SecurityHeadersConfig) (mux.Inspector[T], error) {
	if cfg.FrameOption != "" && cfg.FrameOption != "DENY" && cfg.FrameOption != "SAMEORIGIN" {
		return mux.Inspector[T]{}, ErrInvalidFrameOption
	}

	if cfg.FrameOption == "" {
		cfg.FrameOption = "DENY"
	}

	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	var hstsValue string
	if cfg.HSTSMaxAge > 0 {
		hstsValue = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hstsValue += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hstsValue += "; preload"
		}
	}

	nosniff := !cfg.DisableContentTypeNosniff
	frameOption := cfg.FrameOption
	referrerPolicy := cfg.ReferrerPolicy
	contentSecurityPolicy := cfg.ContentSecurityPolicy
	permissionsPolicy := cfg.PermissionsPolicy

	return mux.Inspector[T]{
		Response: func(_ *http.Request, resp *mux.Response, _ *mux.Context[T]) {
			h := resp.Header()

			if nosniff {
				h.Set("X-Content-Type-Options", "nosniff")
			}

			h.Set("X-Frame-Options", frameOption)
			h.Set("Referrer-Policy", referrerPolicy)

			if hstsValue != "" {
				h.Set("Strict-Transport-Security", hstsValue)
			}

			if contentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", contentSecurityPolicy)
			}

			if permissionsPolicy != "" {
				h.Set("Permissions-Policy", permissionsPolicy)
			}
		},
	}, nil
}
