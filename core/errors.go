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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDecision indicates a TTLDecision failed validation.
	ErrInvalidDecision = errors.New("invalid ttl decision")

	// ErrEmptyQuery indicates a query string is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrEmptyURL indicates a URL string is empty.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrEmptyEmbedding indicates an embedding vector is missing.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")
)
