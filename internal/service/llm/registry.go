package llm

import (
	"fmt"
	"sync"

	domainllm "planforge/internal/domain/services/llm"
)

// ProviderSource creates providers by name
type ProviderSource interface {
	GetProvider(providerName string) (domainllm.Provider, error)
}

// ProviderRegistry routes model identifiers to providers.
// Providers are created on first use and cached.
type ProviderRegistry struct {
	factory ProviderSource
	cache   map[string]domainllm.Provider
	mu      sync.RWMutex
}

// NewProviderRegistry creates a new provider registry.
func NewProviderRegistry(factory ProviderSource) *ProviderRegistry {
	return &ProviderRegistry{
		factory: factory,
		cache:   make(map[string]domainllm.Provider),
	}
}

// Register installs a provider instance directly, replacing any cached one.
func (r *ProviderRegistry) Register(provider domainllm.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[provider.Name()] = provider
}

// GetProvider returns the provider for the given provider name.
func (r *ProviderRegistry) GetProvider(provider string) (domainllm.Provider, error) {
	if provider == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}

	// Fast path: cache hit under read lock
	r.mu.RLock()
	if cached, exists := r.cache[provider]; exists {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have created the provider while we waited for the lock
	if cached, exists := r.cache[provider]; exists {
		return cached, nil
	}

	if r.factory == nil {
		return nil, fmt.Errorf("provider '%s' is not registered", provider)
	}

	created, err := r.factory.GetProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider '%s': %w", provider, err)
	}

	r.cache[provider] = created
	return created, nil
}

// ResolveModel parses a model identifier and returns its provider along with
// the provider-local model name.
func (r *ProviderRegistry) ResolveModel(model string) (domainllm.Provider, string, error) {
	info, err := ParseModel(model)
	if err != nil {
		return nil, "", err
	}

	provider, err := r.GetProvider(info.Provider)
	if err != nil {
		return nil, "", err
	}

	if !provider.SupportsModel(info.Model) {
		return nil, "", fmt.Errorf("model '%s' is not supported by provider '%s'", info.Model, info.Provider)
	}
	return provider, info.Model, nil
}
