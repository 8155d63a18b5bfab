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


package mock

import "github.com/vspruyt/infogen/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock service instances.
type MockProvider struct {
	embedder     *MockEmbedder
	reformulator *MockReformulator
	reasoner     *MockPolicyReasoner
	classifier   *MockClassifier
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use the GetMock* accessors to reach concrete types for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:     NewMockEmbedder(),
		reformulator: NewMockReformulator(),
		reasoner:     NewMockPolicyReasoner(),
		classifier:   NewMockClassifier(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Reformulator returns the mock reformulator.
func (p *MockProvider) Reformulator() ai.QueryReformulator {
	return p.reformulator
}

// PolicyReasoner returns the mock policy reasoner.
func (p *MockProvider) PolicyReasoner() ai.PolicyReasoner {
	return p.reasoner
}

// Classifier returns the mock classifier.
func (p *MockProvider) Classifier() ai.ContentClassifier {
	return p.classifier
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockReformulator returns the underlying mock reformulator for test assertions.
func (p *MockProvider) GetMockReformulator() *MockReformulator {
	return p.reformulator
}

// GetMockPolicyReasoner returns the underlying mock reasoner for test assertions.
func (p *MockProvider) GetMockPolicyReasoner() *MockPolicyReasoner {
	return p.reasoner
}

// GetMockClassifier returns the underlying mock classifier for test assertions.
func (p *MockProvider) GetMockClassifier() *MockClassifier {
	return p.classifier
}
