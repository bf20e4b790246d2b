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

package expressions

import (
	"fmt"

	"github.com/apache/arrow-go-physexpr/internal/kernels"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/scalar"
)

// membership is implemented once per supported probe type. The unexported
// methods keep the set of implementations closed to this package.
type membership interface {
	// materialize builds a set from already evaluated constants.
	materialize(values []scalar.Scalar) (inSet, error)
	// probeList tests arr against the values produced for the current batch.
	probeList(mem memory.Allocator, arr arrow.Array, values []scalar.Scalar, negated bool) (arrow.Array, error)
}

type inSet interface {
	probe(mem memory.Allocator, arr arrow.Array, negated bool) (arrow.Array, error)
	len() int
}

// membershipFor routes a probe type to its evaluator. Every type accepted
// here must have a case in scalarValue as well.
func membershipFor(dt arrow.DataType) (membership, error) {
	switch dt.ID() {
	case arrow.NULL:
		return nullKind{}, nil
	case arrow.BOOL:
		return kind[bool, *array.Boolean]{dt}, nil
	case arrow.INT8:
		return kind[int8, *array.Int8]{dt}, nil
	case arrow.INT16:
		return kind[int16, *array.Int16]{dt}, nil
	case arrow.INT32:
		return kind[int32, *array.Int32]{dt}, nil
	case arrow.INT64:
		return kind[int64, *array.Int64]{dt}, nil
	case arrow.UINT8:
		return kind[uint8, *array.Uint8]{dt}, nil
	case arrow.UINT16:
		return kind[uint16, *array.Uint16]{dt}, nil
	case arrow.UINT32:
		return kind[uint32, *array.Uint32]{dt}, nil
	case arrow.UINT64:
		return kind[uint64, *array.Uint64]{dt}, nil
	case arrow.FLOAT32:
		return kind[float32, *array.Float32]{dt}, nil
	case arrow.FLOAT64:
		return kind[float64, *array.Float64]{dt}, nil
	case arrow.STRING:
		return kind[string, *array.String]{dt}, nil
	case arrow.LARGE_STRING:
		return kind[string, *array.LargeString]{dt}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type for IN/NOT IN: %s",
			arrow.ErrNotImplemented, dt)
	}
}

// scalarValue extracts the native value of a valid scalar. Both string
// encodings yield a Go string.
func scalarValue(s scalar.Scalar) any {
	switch v := s.(type) {
	case *scalar.Boolean:
		return v.Value
	case *scalar.Int8:
		return v.Value
	case *scalar.Int16:
		return v.Value
	case *scalar.Int32:
		return v.Value
	case *scalar.Int64:
		return v.Value
	case *scalar.Uint8:
		return v.Value
	case *scalar.Uint16:
		return v.Value
	case *scalar.Uint32:
		return v.Value
	case *scalar.Uint64:
		return v.Value
	case *scalar.Float32:
		return v.Value
	case *scalar.Float64:
		return v.Value
	case *scalar.String:
		return string(v.Data())
	case *scalar.LargeString:
		return string(v.Data())
	}
	return nil
}

// kind is the evaluator for values of Go type T stored in arrays of type A.
type kind[T comparable, A kernels.ValueArray[T]] struct {
	dt arrow.DataType
}

func (k kind[T, A]) value(s scalar.Scalar) (T, error) {
	v, ok := scalarValue(s).(T)
	if !ok {
		return v, fmt.Errorf("%w: unexpected %s value %s in IN list of %s",
			arrow.ErrType, s.DataType(), s, k.dt)
	}
	return v, nil
}

func (k kind[T, A]) array(arr arrow.Array) (A, error) {
	a, ok := arr.(A)
	if !ok {
		return a, fmt.Errorf("%w: expected %s array, got %s", arrow.ErrType, k.dt, arr.DataType())
	}
	return a, nil
}

func (k kind[T, A]) materialize(values []scalar.Scalar) (inSet, error) {
	set := kernels.NewSet[T](len(values))
	for _, s := range values {
		if !s.IsValid() {
			set.InsertNull()
			continue
		}
		v, err := k.value(s)
		if err != nil {
			return nil, err
		}
		set.Insert(v)
	}
	return typedSet[T, A]{kind: k, set: set}, nil
}

func (k kind[T, A]) probeList(mem memory.Allocator, arr arrow.Array, values []scalar.Scalar, negated bool) (arrow.Array, error) {
	a, err := k.array(arr)
	if err != nil {
		return nil, err
	}

	list := kernels.NewList[T](len(values))
	for _, s := range values {
		if !s.IsValid() {
			list.AppendNull()
			continue
		}
		v, err := k.value(s)
		if err != nil {
			return nil, err
		}
		list.Append(v)
	}
	return kernels.Probe[T](mem, a, list, negated), nil
}

type typedSet[T comparable, A kernels.ValueArray[T]] struct {
	kind kind[T, A]
	set  *kernels.Set[T]
}

func (s typedSet[T, A]) probe(mem memory.Allocator, arr arrow.Array, negated bool) (arrow.Array, error) {
	a, err := s.kind.array(arr)
	if err != nil {
		return nil, err
	}
	return kernels.Probe[T](mem, a, s.set, negated), nil
}

func (s typedSet[T, A]) len() int { return s.set.Len() }

// nullKind handles probes of the null type: every row is null, so nothing
// is compared.
type nullKind struct{}

func (nullKind) materialize([]scalar.Scalar) (inSet, error) { return nullSet{}, nil }

func (nullKind) probeList(mem memory.Allocator, arr arrow.Array, _ []scalar.Scalar, _ bool) (arrow.Array, error) {
	return kernels.NullBooleans(mem, arr.Len()), nil
}

type nullSet struct{}

func (nullSet) probe(mem memory.Allocator, arr arrow.Array, _ bool) (arrow.Array, error) {
	return kernels.NullBooleans(mem, arr.Len()), nil
}

func (nullSet) len() int { return 0 }
