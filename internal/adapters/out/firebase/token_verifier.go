// Package firebase verifies Firebase ID tokens for the access gate.
package firebase

import (
	"context"
	"fmt"

	"parcelhub/internal/core/application/access"

	firebasesdk "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// TokenVerifier implements access.TokenVerifier.
type TokenVerifier struct {
	client idTokenVerifier
}

// NewTokenVerifier initialises a Firebase app. An empty credentialsFile
// falls back to Application Default Credentials.
func NewTokenVerifier(ctx context.Context, projectID, credentialsFile string) (*TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *firebasesdk.Config
	if projectID != "" {
		cfg = &firebasesdk.Config{ProjectID: projectID}
	}

	app, err := firebasesdk.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &TokenVerifier{client: client}, nil
}

// Verify checks the token signature and expiry and reads its email claim.
// A token without an email yields an Identity with an empty Email; the
// gate rejects it.
func (v *TokenVerifier) Verify(ctx context.Context, token string) (access.Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return access.Identity{}, err
	}
	email, _ := decoded.Claims["email"].(string)
	return access.Identity{UID: decoded.UID, Email: email}, nil
}
