package response

import (
	"net/http"
	"time"
)

// CookieOptions controls the attributes of a cookie. The zero value
// produces a secure, HTTP only session cookie scoped to the root path.
type CookieOptions struct {
	Domain  string
	Path    string
	Expires time.Time
	// MaxAge is a lifetime in seconds. When set it takes precedence over
	// Expires, which is recomputed from it.
	MaxAge   int
	Insecure bool
	// AllowScripts drops the HttpOnly attribute.
	AllowScripts bool
	SameSite     http.SameSite
}

var now = time.Now

// AddCookie adds a Set-Cookie header. A cookie with the same name replaces
// the earlier one. Multiple cookies are sent through the multi-value
// headers of the proxy response.
func (r *Response) AddCookie(name string, value string, opts CookieOptions) *Response {
	path := opts.Path
	if path == "" {
		path = "/"
	}
	expires := opts.Expires
	if opts.MaxAge > 0 {
		expires = now().Add(time.Duration(opts.MaxAge) * time.Second)
	}
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   opts.Domain,
		Path:     path,
		Expires:  expires,
		MaxAge:   opts.MaxAge,
		Secure:   !opts.Insecure,
		HttpOnly: !opts.AllowScripts,
		SameSite: opts.SameSite,
	}
	for i, existing := range r.cookies {
		if existing.Name == name {
			r.cookies[i] = c
			return r
		}
	}
	r.cookies = append(r.cookies, c)
	return r
}

// RemoveCookie drops a cookie previously added with AddCookie.
func (r *Response) RemoveCookie(name string) *Response {
	for i, existing := range r.cookies {
		if existing.Name == name {
			r.cookies = append(r.cookies[:i], r.cookies[i+1:]...)
			return r
		}
	}
	return r
}
