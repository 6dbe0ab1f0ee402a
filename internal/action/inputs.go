package action

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// inputPrefix is how the runner exposes `with:` values in the environment:
// the input name uppercased behind an INPUT_ prefix.
const inputPrefix = "INPUT_"

// Inputs are the action's `with:` parameters.
type Inputs struct {
	Token         string `koanf:"doppler-token"`
	Project       string `koanf:"doppler-project"`
	Config        string `koanf:"doppler-config"`
	Identity      string `koanf:"doppler-identity"`
	APIDomain     string `koanf:"api-domain"`
	AutoMask      bool   `koanf:"auto-mask"`
	InjectEnvVars bool   `koanf:"inject-env-vars"`
}

// LoadInputs reads the INPUT_* environment variables the runner sets for
// each action input, layered over the action defaults.
func LoadInputs() (*Inputs, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"api-domain":      "api.doppler.com",
		"auto-mask":       true,
		"inject-env-vars": false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// INPUT_DOPPLER-TOKEN -> doppler-token
	if err := k.Load(envprovider.Provider(inputPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, inputPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var in Inputs
	if err := k.Unmarshal("", &in); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inputs: %w", err)
	}

	if err := in.validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *Inputs) validate() error {
	if in.Token == "" && in.Identity == "" {
		return errors.New("either doppler-token or doppler-identity must be set")
	}
	return nil
}
