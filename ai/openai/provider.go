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


package openai

import (
	"log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/vspruyt/infogen/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages the embedder, reformulator, policy reasoner, and classifier
// instances, which share a single chat client.
type Provider struct {
	config       *ai.Config
	embedder     *Embedder
	reformulator *QueryReformulator
	reasoner     *PolicyReasoner
	classifier   *ContentClassifier
	logger       *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	// One chat client serves all three completion-based services.
	chatClient, err := newChatClient(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:       config,
		embedder:     embedder,
		reformulator: newQueryReformulator(chatClient),
		reasoner:     newPolicyReasoner(chatClient),
		classifier:   newContentClassifier(chatClient, config),
		logger:       slog.Default().With("component", "openai-provider"),
	}, nil
}

// newChatClient creates an OpenAI client configured for chat completions.
func newChatClient(config *ai.Config) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Reformulator returns the query reformulation service.
func (p *Provider) Reformulator() ai.QueryReformulator {
	return p.reformulator
}

// PolicyReasoner returns the cache policy reasoning service.
func (p *Provider) PolicyReasoner() ai.PolicyReasoner {
	return p.reasoner
}

// Classifier returns the content classification service.
func (p *Provider) Classifier() ai.ContentClassifier {
	return p.classifier
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
