// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// ColorSchemeHint is the client hint that carries the visitor's system
// color scheme.
const ColorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

// SecureHeaders adds security headers to every response and asks
// supporting browsers to send the color-scheme client hint.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "0")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "interest-cohort=()")
		// The API only returns JSON.
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		h.Set("Accept-CH", ColorSchemeHint)
		h.Add("Vary", ColorSchemeHint)

		next.ServeHTTP(w, r)
	})
}
