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

package database

import (
	"sort"
	"sync"
)

var defaultRegistry = NewModelRegistry()

// SQLModel is an entity whose table is created by migrations. Instance must
// return a bun model pointer; lower Priority values are created first.
type SQLModel interface {
	Instance() interface{}
	Priority() int
}

// ModelRegistry stores SQL models and lists them in priority order. Models
// with equal priority keep their registration order.
type ModelRegistry struct {
	models []SQLModel
	mutex  sync.RWMutex
}

func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{}
}

func (r *ModelRegistry) Register(model SQLModel) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.models = append(r.models, model)
}

func (r *ModelRegistry) Models() []SQLModel {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := append([]SQLModel(nil), r.models...)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority() < result[j].Priority()
	})
	return result
}

// Instances returns the model pointers in priority order.
func (r *ModelRegistry) Instances() []interface{} {
	models := r.Models()
	instances := make([]interface{}, len(models))
	for i, model := range models {
		instances[i] = model.Instance()
	}
	return instances
}

type modelAdapter[T any] struct {
	priority int
}

func (a modelAdapter[T]) Instance() interface{} { return (*T)(nil) }

func (a modelAdapter[T]) Priority() int { return a.priority }

// ModelOf adapts the bun model T into an SQLModel.
func ModelOf[T any](priority int) SQLModel {
	return modelAdapter[T]{priority: priority}
}

// RegisterModel adds T to the default registry.
func RegisterModel[T any](priority int) {
	defaultRegistry.Register(ModelOf[T](priority))
}

// RegisteredModels returns the models of the default registry.
func RegisteredModels() []SQLModel {
	return defaultRegistry.Models()
}

// RegisteredModelInstances returns the model pointers of the default registry.
func RegisteredModelInstances() []interface{} {
	return defaultRegistry.Instances()
}
