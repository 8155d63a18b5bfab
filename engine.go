// Copyright 2025 Vincent Spruyt
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package infogen is an adaptive research engine: a semantic cache over web
// search and page extraction, with per-query TTL policy and a bounded-retry
// research workflow on top.
package infogen

import (
	"log/slog"

	"github.com/vspruyt/infogen/ai"
	"github.com/vspruyt/infogen/ai/openai"
	"github.com/vspruyt/infogen/cache"
	"github.com/vspruyt/infogen/policy"
	"github.com/vspruyt/infogen/storage/badger"
	"github.com/vspruyt/infogen/websearch/tavily"
	"github.com/vspruyt/infogen/workflow"
)

// Engine owns the storage backend, AI provider, search provider, and the
// caches built on top of them.
type Engine struct {
	backend      *badger.Backend
	repos        *badger.Repositories
	provider     ai.Provider
	embedder     *cache.CachingEmbedder
	searchCache  *cache.SearchCache
	contentCache *cache.ContentCache
	policyEngine *policy.Engine
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig      *ai.Config
	tavilyAPIKey  string
	tavilyOptions []tavily.Option
	inMemory      bool
}

// WithAIConfig overrides the default AI service configuration.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithTavilyAPIKey sets the Tavily API key.
func WithTavilyAPIKey(key string) EngineOption {
	return func(o *engineOptions) {
		o.tavilyAPIKey = key
	}
}

// WithTavilyOptions forwards options to the Tavily client.
func WithTavilyOptions(opts ...tavily.Option) EngineOption {
	return func(o *engineOptions) {
		o.tavilyOptions = opts
	}
}

// WithInMemoryStorage keeps the cache in memory instead of on disk.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the cache database at filePath and wires all services.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	repos := badger.NewRepositories(backend)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		backend.Close()
		return nil, err
	}

	client, err := tavily.NewClient(options.tavilyAPIKey, options.tavilyOptions...)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	embedder := cache.NewCachingEmbedder(provider.Embedder(), repos.Embeddings)
	policyEngine := policy.NewEngine(repos.Policies, provider.PolicyReasoner())
	searchCache := cache.NewSearchCache(policyEngine, repos.Results, repos.Content, client)
	contentCache := cache.NewContentCache(repos.Content, client)

	return &Engine{
		backend:      backend,
		repos:        repos,
		provider:     provider,
		embedder:     embedder,
		searchCache:  searchCache,
		contentCache: contentCache,
		policyEngine: policyEngine,
		logger:       slog.Default(),
	}, nil
}

// Close releases the AI provider and the storage backend.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// SearchCache returns the similarity-indexed search cache.
func (e *Engine) SearchCache() *cache.SearchCache {
	return e.searchCache
}

// ContentCache returns the URL-keyed content cache.
func (e *Engine) ContentCache() *cache.ContentCache {
	return e.contentCache
}

// PolicyEngine returns the TTL policy engine.
func (e *Engine) PolicyEngine() *policy.Engine {
	return e.policyEngine
}

// NewOrchestrator builds a research workflow over the engine's services.
func (e *Engine) NewOrchestrator(config *workflow.Config, opts ...workflow.OrchestratorOption) *workflow.Orchestrator {
	return workflow.NewOrchestrator(
		e.embedder,
		e.provider.Reformulator(),
		e.provider.Classifier(),
		e.searchCache,
		e.contentCache,
		config,
		opts...,
	)
}
