package bootstrap

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"github.com/programmableapple/financialAdvisor/internal/config"
)

func InitSecretManager(ctx context.Context) (*secretmanager.Client, error) {
	return secretmanager.NewClient(ctx)
}

// ResolveTokenSecrets fills the JWT signing secrets from Secret Manager
// when they were not provided via env. TokenSecretName is the secret ID
// prefix; "<prefix>-access" and "<prefix>-refresh" are read at their
// latest version.
func ResolveTokenSecrets(ctx context.Context, client *secretmanager.Client, cfg *config.Config) error {
	if cfg.AccessTokenSecret != "" && cfg.RefreshTokenSecret != "" {
		return nil
	}
	if cfg.TokenSecretName == "" {
		return fmt.Errorf("token secrets missing: set ACCESSTOKENSECRET/REFRESHTOKENSECRET or TOKENSECRETNAME")
	}

	if cfg.AccessTokenSecret == "" {
		v, err := accessSecret(ctx, client, cfg.ProjectID, cfg.TokenSecretName+"-access")
		if err != nil {
			return err
		}
		cfg.AccessTokenSecret = v
	}
	if cfg.RefreshTokenSecret == "" {
		v, err := accessSecret(ctx, client, cfg.ProjectID, cfg.TokenSecretName+"-refresh")
		if err != nil {
			return err
		}
		cfg.RefreshTokenSecret = v
	}
	return nil
}

func accessSecret(ctx context.Context, client *secretmanager.Client, projectID, secretID string) (string, error) {
	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretID)
	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", secretID, err)
	}
	return string(resp.Payload.Data), nil
}
