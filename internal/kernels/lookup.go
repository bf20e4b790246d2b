// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kernels

import "slices"

// Lookup is the membership capability consumed by Probe. HasNull reports
// whether a null was contributed to the lookup, which turns every
// non-matching probe value into a null result.
type Lookup[T comparable] interface {
	Contains(T) bool
	HasNull() bool
	Len() int
}

// Set is a deduplicated hash lookup. It is meant to be filled once and then
// shared read-only between goroutines.
type Set[T comparable] struct {
	values  map[T]struct{}
	hasNull bool
}

// NewSet returns an empty Set with room for capacity distinct values.
func NewSet[T comparable](capacity int) *Set[T] {
	return &Set[T]{values: make(map[T]struct{}, capacity)}
}

func (s *Set[T]) Insert(v T) { s.values[v] = struct{}{} }

func (s *Set[T]) InsertNull() { s.hasNull = true }

func (s *Set[T]) Contains(v T) bool {
	_, ok := s.values[v]
	return ok
}

func (s *Set[T]) HasNull() bool { return s.hasNull }

// Len is the number of distinct non-null values.
func (s *Set[T]) Len() int { return len(s.values) }

// List is a linear-scan lookup for short candidate lists that are collected
// again for every batch. Duplicates are kept.
type List[T comparable] struct {
	values  []T
	hasNull bool
}

func NewList[T comparable](capacity int) *List[T] {
	return &List[T]{values: make([]T, 0, capacity)}
}

func (l *List[T]) Append(v T) { l.values = append(l.values, v) }

func (l *List[T]) AppendNull() { l.hasNull = true }

func (l *List[T]) Contains(v T) bool { return slices.Contains(l.values, v) }

func (l *List[T]) HasNull() bool { return l.hasNull }

func (l *List[T]) Len() int { return len(l.values) }
