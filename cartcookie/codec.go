package cartcookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// MaxAge is how long a cart survives in the browser
const MaxAge = 30 * 24 * time.Hour

// MaxValueSize keeps the cookie within the 4KB per-cookie browser limit
const MaxValueSize = 4000

var (
	// ErrInvalid is returned by Decode for a malformed or wrongly signed value
	ErrInvalid = errors.New("invalid cart cookie")

	// ErrTooLarge is returned by Set when the signed value exceeds MaxValueSize
	ErrTooLarge = errors.New("cart cookie too large")
)

// Codec signs cart snapshots so a client cannot edit them
type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

// New returns a codec that signs with secret and stores the value in the
// named cookie. secure marks the cookie HTTPS-only.
func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// Encode signs payload. The value format is
// base64url(payload).base64url(hmac(encoded payload)).
func (c *Codec) Encode(payload string) string {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + sign(c.Secret, encoded)
}

// Decode verifies a value produced by Encode and returns its payload
func (c *Codec) Decode(v string) (string, error) {
	encoded, sig, ok := strings.Cut(v, ".")
	if !ok || encoded == "" || strings.Contains(sig, ".") {
		return "", ErrInvalid
	}
	if !verify(c.Secret, encoded, sig) {
		return "", ErrInvalid
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalid
	}
	return string(payload), nil
}

// Get returns the verified payload. A tampered cookie is cleared and reported as absent.
func (c *Codec) Get(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	payload, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return payload, true
}

// Set writes the signed payload as an HttpOnly, SameSite=Lax cookie
func (c *Codec) Set(ctx *gin.Context, payload string) error {
	val := c.Encode(payload)
	if len(val) > MaxValueSize {
		return ErrTooLarge
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, val, int(MaxAge.Seconds()), "/", "", c.Secure, true)
	return nil
}

// Clear expires the cart cookie
func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	return hmac.Equal([]byte(sign(secret, payload)), []byte(sig))
}
