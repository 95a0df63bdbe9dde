// Package googleauth verifies Google ID tokens against Google's published
// JWKS, so federated logins never trust an unverified payload.
package googleauth

import (
	"context"
	"log"

	internal_errors "github.com/borda-dev/borda/internal/errors"

	keyfunc "github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// Identity is the subset of the Google ID-token payload this service needs.
type Identity struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

type Verifier interface {
	Verify(idToken string) (Identity, error)
}

type GoogleVerifier struct {
	keys     keyfunc.Keyfunc
	clientId string
	parser   *jwt.Parser
}

// New fetches Google's JWKS; the keyfunc refreshes keys in the background.
func New(ctx context.Context, clientId string) (*GoogleVerifier, error) {
	keys, err := keyfunc.NewDefaultCtx(ctx, []string{googleJWKSURL})
	if err != nil {
		return nil, err
	}
	return &GoogleVerifier{
		keys:     keys,
		clientId: clientId,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}), jwt.WithAudience(clientId)),
	}, nil
}

func (g *GoogleVerifier) Verify(idToken string) (Identity, error) {
	claims := jwt.MapClaims{}
	token, err := g.parser.ParseWithClaims(idToken, claims, g.keys.Keyfunc)
	if err != nil || !token.Valid {
		if err != nil {
			log.Print(err.Error())
		}
		return Identity{}, internal_errors.Unauthorized("Invalid Google token")
	}

	identity := Identity{}
	identity.Sub, _ = claims["sub"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.Name, _ = claims["name"].(string)
	identity.Picture, _ = claims["picture"].(string)
	if identity.Email == "" {
		return Identity{}, internal_errors.Unauthorized("Google token carries no email")
	}
	return identity, nil
}
