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


package badger

import "github.com/vspruyt/infogen/storage"

// Repositories bundles the four cache repositories backed by one database.
type Repositories struct {
	Embeddings storage.EmbeddingRepository
	Policies   storage.PolicyRepository
	Results    storage.ResultRepository
	Content    storage.ContentRepository
}

// NewRepositories creates all cache repositories over an open backend.
func NewRepositories(backend *Backend) *Repositories {
	return &Repositories{
		Embeddings: NewEmbeddingRepository(backend),
		Policies:   NewPolicyRepository(backend),
		Results:    NewResultRepository(backend),
		Content:    NewContentRepository(backend),
	}
}

// NewMemoryRepositories creates in-memory cache repositories for testing.
// Caller must close the backend when done.
func NewMemoryRepositories() (*Repositories, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}
	return NewRepositories(backend), backend, nil
}
