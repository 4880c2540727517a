package google

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/gdocs2md/internal/core/domain"
)

// Credentials selects how Drive requests are authorised.
// AccessToken wins over File when both are set.
type Credentials struct {
	// File is a service account key or authorized_user JSON file.
	File string
	// AccessToken is a short-lived OAuth access token.
	AccessToken string
}

// NewTokenSource creates an oauth2.TokenSource for the Drive read-only scope.
// With neither field set it falls back to Application Default Credentials.
func NewTokenSource(ctx context.Context, creds Credentials) (oauth2.TokenSource, error) {
	if token := strings.TrimSpace(creds.AccessToken); token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		}), nil
	}

	if creds.File != "" {
		data, err := os.ReadFile(creds.File)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return TokenSourceFromJSON(ctx, data)
	}

	found, err := googleoauth.FindDefaultCredentials(ctx, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: no Google credentials configured: %w", domain.ErrAuthRequired, err)
	}
	return found.TokenSource, nil
}

// TokenSourceFromJSON parses a credentials JSON document.
func TokenSourceFromJSON(ctx context.Context, data []byte) (oauth2.TokenSource, error) {
	creds, err := googleoauth.CredentialsFromJSON(ctx, data, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse credentials: %w", domain.ErrAuthRequired, err)
	}
	return creds.TokenSource, nil
}
