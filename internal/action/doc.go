// Package action adapts the Doppler client to the GitHub Actions runner:
// it reads action inputs from the environment, issues workflow commands,
// appends step outputs and environment variables to the runner's state
// files, and requests OIDC ID tokens from the runner's token service.
package action
