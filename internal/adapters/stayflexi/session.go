package stayflexi

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryMargin: a token this close to expiry is treated as already
// expired so it cannot die mid-run.
const expiryMargin = time.Hour

var ErrNoCredentials = errors.New("stayflexi: no credentials configured")

// Session holds the PMS credential pair and the bearer token obtained
// from it. One Session is passed explicitly into the client; there is no
// process-wide token state.
type Session struct {
	Email    string
	Password string

	token string
	now   func() time.Time
}

func NewSession(email, password string) *Session {
	return &Session{Email: email, Password: password, now: time.Now}
}

// Token returns the held bearer token, or "" when none is held or the
// held one is expired (within the safety margin).
func (s *Session) Token() string {
	if s.token == "" || !s.usable(s.token) {
		return ""
	}
	return s.token
}

func (s *Session) SetToken(tok string) { s.token = tok }

// HasCredentials reports whether a login can even be attempted.
func (s *Session) HasCredentials() bool { return s.Email != "" && s.Password != "" }

// usable inspects the token's exp claim without verifying the signature.
// We are not the token's consumer of trust (the PMS is); the claim is
// read only to decide whether a login round-trip can be skipped.
func (s *Session) usable(tok string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		// opaque token: assume usable, the fetch path handles a 401
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Time.After(s.now().Add(expiryMargin))
}
