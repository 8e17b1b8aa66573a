// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/models"
)

// Cookie name prefixes. The manage code itself follows the prefix.
const (
	PollCookiePrefix  = "diddle_manage_code_"
	VoterCookiePrefix = "diddle_voter_code_"
)

const cookieMaxAge = 365 * 24 * time.Hour

// SetCodeCookie remembers that this browser holds code
func SetCodeCookie(w http.ResponseWriter, prefix string, code models.ManageCode, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     prefix + string(code),
		Value:    "1",
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCodeCookie tells the browser to forget code
func ClearCodeCookie(w http.ResponseWriter, prefix string, code models.ManageCode, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     prefix + string(code),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// CodesFromCookies returns the well-formed codes carried in cookies named
// prefix+code, sorted and without duplicates
func CodesFromCookies(r *http.Request, prefix string) []models.ManageCode {
	seen := make(map[models.ManageCode]struct{})
	codes := []models.ManageCode{}
	for _, c := range r.Cookies() {
		raw, ok := strings.CutPrefix(c.Name, prefix)
		if !ok {
			continue
		}
		code, err := auth.ParseManageCode(raw)
		if err != nil {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// CodeSet is CodesFromCookies as a set
func CodeSet(r *http.Request, prefix string) map[models.ManageCode]struct{} {
	set := make(map[models.ManageCode]struct{})
	for _, code := range CodesFromCookies(r, prefix) {
		set[code] = struct{}{}
	}
	return set
}
