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

import "fmt"

// ValidateDecision validates a TTLDecision according to domain rules.
//
// Validation rules:
//   - Query must not be empty
//   - Embedding must not be empty
//   - CacheDurationMinutes must be within [0, MaxCacheDurationMinutes]
//
// The TimeRange field is not validated here; unknown values are folded to
// TimeRangeNone by Normalize before a decision is persisted.
func ValidateDecision(d *TTLDecision) error {
	if d == nil {
		return fmt.Errorf("%w: decision is nil", ErrInvalidDecision)
	}

	if d.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDecision, ErrEmptyQuery)
	}

	if len(d.Embedding) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDecision, ErrEmptyEmbedding)
	}

	if d.CacheDurationMinutes < 0 || d.CacheDurationMinutes > MaxCacheDurationMinutes {
		return fmt.Errorf("%w: cache duration %d out of range", ErrInvalidDecision, d.CacheDurationMinutes)
	}

	return nil
}
