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


// Package storage provides the storage abstraction layer for the research cache.
//
// It defines repository interfaces that decouple cache logic from the storage
// backend, plus the two rules every backend must share:
//
//   - Similarity: CosineSimilarity (1 - cosine distance), thresholds inclusive.
//   - Expiry: ValidAt, strict "now < createdAt + ttl", enforced lazily at read
//     time. Stale rows are never returned but remain until overwritten.
//
// Four repositories cover the engine's cache tables:
//
//   - EmbeddingRepository: exact-match text→vector cache (no TTL)
//   - PolicyRepository: TTL decisions, looked up by embedding proximity
//   - ResultRepository: search responses, looked up by embedding proximity
//   - ContentRepository: extracted page text, exact match by URL
//
// Public constructors in backend packages return these interfaces so callers
// never couple to a concrete store; see storage/badger for the BadgerDB
// implementation and its in-memory test constructor.
package storage
