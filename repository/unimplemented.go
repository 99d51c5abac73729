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

import (
	"context"

	"github.com/tomoncle/querysculptor/sculptor"
	"github.com/tomoncle/querysculptor/types"
)

// UnimplementedExecutor returns ErrUnsupported from every operation. Embed it
// in executors that only provide part of the capability set.
type UnimplementedExecutor[T any] struct{}

var _ Executor[struct{}] = UnimplementedExecutor[struct{}]{}

func (UnimplementedExecutor[T]) List(context.Context, sculptor.Sculptor[T]) ([]*T, error) {
	return nil, ErrUnsupported
}

func (UnimplementedExecutor[T]) FindAll(context.Context, sculptor.Sculptor[T], *types.PageRequest, QueryFunc) error {
	return ErrUnsupported
}

func (UnimplementedExecutor[T]) FindPage(context.Context, sculptor.Sculptor[T], *types.PageRequest) (*types.PaginationResult[*T], error) {
	return nil, ErrUnsupported
}

func (UnimplementedExecutor[T]) FindOne(context.Context, sculptor.Sculptor[T]) (*T, error) {
	return nil, ErrUnsupported
}

func (UnimplementedExecutor[T]) Exists(context.Context, sculptor.Sculptor[T]) (bool, error) {
	return false, ErrUnsupported
}

func (UnimplementedExecutor[T]) Count(context.Context, sculptor.Sculptor[T]) (int, error) {
	return 0, ErrUnsupported
}

func (UnimplementedExecutor[T]) Delete(context.Context, sculptor.Sculptor[T]) (int64, error) {
	return 0, ErrUnsupported
}

func (UnimplementedExecutor[T]) Update(context.Context, sculptor.Sculptor[T], Mutator) (int64, error) {
	return 0, ErrUnsupported
}
