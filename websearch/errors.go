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


package websearch

import "errors"

var (
	// ErrRateLimited indicates the provider rejected the call for quota
	// reasons after retries were exhausted. Callers should surface this to
	// the user rather than retry the whole workflow.
	ErrRateLimited = errors.New("search provider rate limited")

	// ErrUnauthorized indicates the API key was rejected.
	ErrUnauthorized = errors.New("search provider rejected credentials")

	// ErrMissingAPIKey indicates no API key was configured.
	ErrMissingAPIKey = errors.New("search provider API key is required")
)
