package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Cookie names written by the dashboard's auth provider. The secure variant
// is used when the site is served over https.
const (
	SecureCookieName = "__Secure-next-auth.session-token"
	CookieName       = "next-auth.session-token"
)

var (
	ErrNoSession    = errors.New("session: no token")
	ErrInvalidToken = errors.New("session: invalid token")
)

type Claims struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// DisplayName is what approvals record as the approver.
func (c *Claims) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.Email != "":
		return c.Email
	default:
		return c.Subject
	}
}

type Reader struct {
	secret []byte
}

func NewReader(secret string) *Reader {
	return &Reader{secret: []byte(secret)}
}

// Read decodes the session carried by r. It returns ErrNoSession when the
// request has no token and ErrInvalidToken when the token does not verify.
func (r *Reader) Read(req *http.Request) (*Claims, error) {
	raw := tokenFromRequest(req)
	if raw == "" {
		return nil, ErrNoSession
	}
	return r.Parse(raw)
}

func (r *Reader) Parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return r.secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Sign issues a token the Reader accepts. Used by local tooling and tests;
// production sessions are issued by the dashboard.
func (r *Reader) Sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(r.secret)
}

func tokenFromRequest(req *http.Request) string {
	for _, name := range []string{SecureCookieName, CookieName} {
		if cookie, err := req.Cookie(name); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}

	if tokenString, found := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer "); found {
		return strings.TrimSpace(tokenString)
	}
	return ""
}
