package tagfilter

import (
	"net/http"
	"net/url"
	"time"
)

// CookieName is the cookie used by the server side filter form
const CookieName = "otoran-tags-filter"

const cookieMaxAge = 365 * 24 * time.Hour

// CookieStorage keeps the selection in a cookie scoped to the browser
type CookieStorage struct {
	r *http.Request
	w http.ResponseWriter
}

// NewCookieStorage creates a storage reading from r and writing to w
func NewCookieStorage(w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{r: r, w: w}
}

// Load returns the stored selection, or "" when there is none
func (c *CookieStorage) Load() string {
	cookie, err := c.r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return value
}

// Save writes the selection cookie
func (c *CookieStorage) Save(value string) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     CookieName,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
