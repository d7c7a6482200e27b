package access

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	guestPassCookiePrefix = "guest_pass_"
	// GuestPassTTL bounds how long a passed access-code gate is remembered.
	GuestPassTTL = 30 * 24 * time.Hour
)

var (
	ErrInvalidGuestPass = errors.New("invalid guest pass")
	ErrGuestPassExpired = errors.New("guest pass expired")
)

type guestPass struct {
	Owner  string `msgpack:"owner"`
	Issued int64  `msgpack:"issued"`
}

// GuestPasses issues and checks signed cookies that remember a passed access-code gate.
type GuestPasses struct {
	secret []byte
	secure bool
	now    func() time.Time
}

// NewGuestPasses returns a GuestPasses signing with secret.
func NewGuestPasses(secret string, secureCookies bool) *GuestPasses {
	return &GuestPasses{secret: []byte(secret), secure: secureCookies, now: time.Now}
}

// CookieName is the name of the guest-pass cookie for ownerID.
func CookieName(ownerID string) string {
	return guestPassCookiePrefix + ownerID
}

// Issue returns a signed pass value for ownerID.
func (g *GuestPasses) Issue(ownerID string) (string, error) {
	payload, err := msgpack.Marshal(guestPass{Owner: ownerID, Issued: g.now().Unix()})
	if err != nil {
		return "", fmt.Errorf("failed to encode guest pass: %w", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + g.sign(encoded), nil
}

// Verify checks that value is an unexpired pass for ownerID.
func (g *GuestPasses) Verify(value, ownerID string) error {
	encoded, signature, ok := strings.Cut(value, ".")
	if !ok {
		return ErrInvalidGuestPass
	}
	if !hmac.Equal([]byte(signature), []byte(g.sign(encoded))) {
		return ErrInvalidGuestPass
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return ErrInvalidGuestPass
	}
	var pass guestPass
	if err := msgpack.Unmarshal(payload, &pass); err != nil {
		return ErrInvalidGuestPass
	}
	if pass.Owner != ownerID {
		return ErrInvalidGuestPass
	}
	if g.now().Sub(time.Unix(pass.Issued, 0)) > GuestPassTTL {
		return ErrGuestPassExpired
	}
	return nil
}

// HasPass reports whether r carries a valid pass for ownerID.
func (g *GuestPasses) HasPass(r *http.Request, ownerID string) bool {
	if ownerID == "" {
		return false
	}
	cookie, err := r.Cookie(CookieName(ownerID))
	if err != nil {
		return false
	}
	return g.Verify(cookie.Value, ownerID) == nil
}

// SetCookie issues a pass for ownerID and attaches it to w.
func (g *GuestPasses) SetCookie(w http.ResponseWriter, ownerID string) error {
	value, err := g.Issue(ownerID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(ownerID),
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(GuestPassTTL.Seconds()),
	})
	return nil
}

// ClearCookie removes the pass for ownerID.
func (g *GuestPasses) ClearCookie(w http.ResponseWriter, ownerID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(ownerID),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func (g *GuestPasses) sign(payload string) string {
	mac := hmac.New(sha256.New, g.secret)
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
