package capabilities

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Providers with an embedded catalog file
var builtinProviders = []string{"openai", "openrouter"}

// Registry manages vision model capabilities across providers
type Registry struct {
	providers map[string]*ProviderCapabilities
	mu        sync.RWMutex
}

// NewRegistry creates a new capability registry and loads embedded YAML files
func NewRegistry() (*Registry, error) {
	r := &Registry{
		providers: make(map[string]*ProviderCapabilities),
	}

	for _, provider := range builtinProviders {
		data, err := configFiles.ReadFile(fmt.Sprintf("config/%s.yaml", provider))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s capabilities: %w", provider, err)
		}
		if err := r.Load(provider, data); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Load parses a provider catalog and registers it, replacing any earlier one
func (r *Registry) Load(provider string, data []byte) error {
	var providerCaps ProviderCapabilities
	if err := yaml.Unmarshal(data, &providerCaps); err != nil {
		return fmt.Errorf("failed to unmarshal %s capabilities: %w", provider, err)
	}

	r.mu.Lock()
	r.providers[provider] = &providerCaps
	r.mu.Unlock()

	return nil
}

// GetModelCapabilities returns capabilities for a specific model
func (r *Registry) GetModelCapabilities(provider, model string) (*ModelCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providerCaps, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	for i := range providerCaps.Models {
		if providerCaps.Models[i].ID == model {
			m := providerCaps.Models[i]
			return &m, nil
		}
	}

	return nil, fmt.Errorf("unknown model %s for provider %s", model, provider)
}

// ListProviderModels returns all models for a provider (ordered as defined in YAML)
func (r *Registry) ListProviderModels(provider string) ([]ModelCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providerCaps, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	models := make([]ModelCapabilities, len(providerCaps.Models))
	copy(models, providerCaps.Models)
	return models, nil
}

// GetAllProviders returns the registered providers in alphabetical order
func (r *Registry) GetAllProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]string, 0, len(r.providers))
	for provider := range r.providers {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	return providers
}

// CheckClassifier explains why provider/model cannot classify media, or
// returns nil when it can
func (r *Registry) CheckClassifier(provider, model string) error {
	caps, err := r.GetModelCapabilities(provider, model)
	if err != nil {
		return err
	}
	if !caps.SupportsVision {
		return fmt.Errorf("model %s does not accept images", model)
	}
	if !caps.SupportsJSONMode {
		return fmt.Errorf("model %s does not support JSON response format", model)
	}
	return nil
}
