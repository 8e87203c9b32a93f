package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity assertion set carried by a bearer token: the
// subject, a display name, and group memberships.
type Claims struct {
	Name   string   `json:"name"`
	Groups []string `json:"groups"`
	jwt.RegisteredClaims
}

// Identity is what the rest of the service sees of the caller.
type Identity struct {
	UserID   string
	UserName string
	IsAdmin  bool
}

// Resolver extracts an Identity from inbound requests. Tokens are HS256
// signed with a shared secret; admin standing means membership of adminGroup
// in the groups claim.
type Resolver struct {
	secret     []byte
	adminGroup string
}

func NewResolver(secret, adminGroup string) *Resolver {
	return &Resolver{
		secret:     []byte(secret),
		adminGroup: adminGroup,
	}
}

// Identity resolves the caller of r. It returns ErrMissingToken when no
// bearer token is present and ErrInvalidToken when one is present but does
// not verify; handlers decide whether that matters for their operation.
func (res *Resolver) Identity(r *http.Request) (*Identity, error) {
	token, err := tokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	return res.resolve(token)
}

func (res *Resolver) resolve(tokenString string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return res.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	identity := &Identity{
		UserID:   claims.Subject,
		UserName: claims.Name,
	}
	for _, group := range claims.Groups {
		if group == res.adminGroup {
			identity.IsAdmin = true
			break
		}
	}
	return identity, nil
}

func tokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}
