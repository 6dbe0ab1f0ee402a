// Command secrets-fetch is the entrypoint of the secrets-fetch GitHub
// Action: it fetches the secrets of a Doppler config and publishes each
// one as a step output (and optionally as an environment variable),
// masking sensitive values in the workflow log.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	doppler "github.com/actions-marketplace-validations/DopplerHQ-secrets-fetch-action"
	"github.com/actions-marketplace-validations/DopplerHQ-secrets-fetch-action/internal/action"
)

func main() {
	// Local runs keep their inputs in a .env file; on a runner the
	// environment is already populated.
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	}))

	if err := run(context.Background(), logger); err != nil {
		logger.Error("secrets fetch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	inputs, err := action.LoadInputs()
	if err != nil {
		return err
	}

	client, err := doppler.New(doppler.WithAPIHost(inputs.APIDomain))
	if err != nil {
		return err
	}

	runner := action.NewRunner()

	token := inputs.Token
	if token == "" {
		logger.Info("exchanging OIDC token for a service token", "identity", inputs.Identity)
		idToken, err := action.IDToken(ctx, "")
		if err != nil {
			return err
		}
		token, err = client.OIDCAuth(ctx, inputs.Identity, idToken)
		if err != nil {
			return err
		}
		runner.Mask(token)
	}

	var fetchOpts []doppler.FetchOption
	if inputs.Project != "" && inputs.Config != "" {
		fetchOpts = append(fetchOpts,
			doppler.WithProject(inputs.Project),
			doppler.WithConfig(inputs.Config),
		)
	}

	secrets, err := client.FetchSecrets(ctx, token, fetchOpts...)
	if err != nil {
		return err
	}
	logger.Info("fetched secrets", "count", len(secrets))

	for _, name := range doppler.Names(secrets) {
		secret := secrets[name]
		if action.ShouldMask(inputs.AutoMask, secret.ComputedVisibility) {
			runner.Mask(secret.Computed)
		}
		if err := runner.SetOutput(name, secret.Computed); err != nil {
			return err
		}
		if inputs.InjectEnvVars {
			if err := runner.ExportVariable(name, secret.Computed); err != nil {
				return err
			}
		}
	}

	return nil
}
