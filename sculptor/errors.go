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

package sculptor

import "errors"

var (
	// ErrIllegalState reports a programming error such as reading the select
	// query of an update context. It is raised through panic.
	ErrIllegalState = errors.New("sculptor: illegal state")

	// ErrUnknownField is recorded on a Builder when a path names a field the
	// model does not have.
	ErrUnknownField = errors.New("sculptor: unknown field")
)
