/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package repository

import "errors"

var (
	// ErrInvalidArgument is returned before any store interaction when a
	// specification, page request or callback is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported is returned by executors lacking an operation.
	ErrUnsupported = errors.New("operation not supported")

	// ErrConfiguration is returned when the entity descriptor is missing or
	// does not describe a usable table.
	ErrConfiguration = errors.New("invalid entity configuration")

	// ErrNonUniqueResult is returned by FindOne when more than one row
	// matches.
	ErrNonUniqueResult = errors.New("query returned more than one row")
)
