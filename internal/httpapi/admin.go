// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const adminCookieName = "sparql_proxy_admin"

// AdminCookie signs and verifies the admin session cookie using HMAC-SHA256
// keyed on ADMIN_COOKIE_SECRET. The cookie carries a derived token rather
// than the credential itself, so reading the response headers never reveals
// the secret.
type AdminCookie struct {
	secret []byte
}

func NewAdminCookie(secret string) *AdminCookie {
	return &AdminCookie{secret: []byte(secret)}
}

func (a *AdminCookie) sign() string {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(adminCookieName))
	return hex.EncodeToString(mac.Sum(nil))
}

// Set attaches a freshly-signed admin cookie to the response.
func (a *AdminCookie) Set(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    a.sign(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Valid reports whether r carries a correctly-signed admin cookie.
func (a *AdminCookie) Valid(r *http.Request) bool {
	c, err := r.Cookie(adminCookieName)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Value), []byte(a.sign())) == 1
}

// handleAdmin serves /admin: HTTP Basic Auth gates access, success sets
// the signed cookie that the live channel accepts.
func (h *Handler) handleAdmin(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	validUser := subtle.ConstantTimeCompare([]byte(user), []byte(h.AdminUser)) == 1
	validPass := subtle.ConstantTimeCompare([]byte(pass), []byte(h.AdminPassword)) == 1
	if !ok || !validUser || !validPass {
		w.Header().Set("WWW-Authenticate", `Basic realm="sparql-proxy admin"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	h.AdminCookie.Set(w)
	w.Write([]byte("admin session established"))
}
