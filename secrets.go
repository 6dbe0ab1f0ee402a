package doppler

import (
	"sort"

	"github.com/actions-marketplace-validations/DopplerHQ-secrets-fetch-action/internal/api"
)

// Secret is one secret record of a config.
type Secret = api.Secret

// Secrets maps secret names to their records.
type Secrets = api.Secrets

// VisibilityUnmasked marks a secret whose value is displayed in plaintext.
// Secrets with any other visibility should be masked in logs.
const VisibilityUnmasked = api.VisibilityUnmasked

// Names returns the secret names of s in sorted order.
func Names(s Secrets) []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
