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

// Package kernels contains the vectorized membership kernels used by the
// IN / NOT IN physical expression. A single generic algorithm serves every
// supported value kind; callers only need an array exposing Value(i).
package kernels

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ValueArray is an arrow array whose elements can be read as T. All of the
// primitive, boolean and string arrays in the array package satisfy it.
type ValueArray[T comparable] interface {
	arrow.Array
	Value(int) T
}

// Probe tests every row of arr against lookup and returns the SQL
// three-valued result:
//
//	row is null                      -> null
//	row found                        -> !negated
//	row not found, lookup has a null -> null
//	row not found                    -> negated
//
// The values and validity bitmaps are written directly rather than through a
// builder.
func Probe[T comparable](mem memory.Allocator, arr ValueArray[T], lookup Lookup[T], negated bool) *array.Boolean {
	var (
		n       = arr.Len()
		nbytes  = int(bitutil.BytesForBits(int64(n)))
		hasNull = lookup.HasNull()
		nulls   = 0
	)

	values := memory.NewResizableBuffer(mem)
	defer values.Release()
	values.Resize(nbytes)
	out := values.Bytes()
	memory.Set(out, 0)

	var (
		validity *memory.Buffer
		valid    []byte
	)
	if hasNull || arr.NullN() > 0 {
		validity = memory.NewResizableBuffer(mem)
		defer validity.Release()
		validity.Resize(nbytes)
		valid = validity.Bytes()
		memory.Set(valid, 0)
	}

	switch {
	case !hasNull && arr.NullN() == 0:
		for i := 0; i < n; i++ {
			if lookup.Contains(arr.Value(i)) != negated {
				bitutil.SetBit(out, i)
			}
		}
	case !hasNull:
		// the output is null exactly where the input is
		if bitmap := arr.NullBitmapBytes(); bitmap != nil {
			bitutil.CopyBitmap(bitmap, arr.Data().Offset(), n, valid, 0)
		}
		nulls = arr.NullN()
		for i := 0; i < n; i++ {
			if arr.IsValid(i) && lookup.Contains(arr.Value(i)) != negated {
				bitutil.SetBit(out, i)
			}
		}
	default:
		for i := 0; i < n; i++ {
			if arr.IsNull(i) || !lookup.Contains(arr.Value(i)) {
				nulls++
				continue
			}
			bitutil.SetBit(valid, i)
			if !negated {
				bitutil.SetBit(out, i)
			}
		}
	}

	data := array.NewData(arrow.FixedWidthTypes.Boolean, n,
		[]*memory.Buffer{validity, values}, nil, nulls, 0)
	defer data.Release()
	return array.NewBooleanData(data)
}

// NullBooleans returns a boolean array of length n where every slot is null.
func NullBooleans(mem memory.Allocator, n int) arrow.Array {
	return array.MakeArrayOfNull(mem, arrow.FixedWidthTypes.Boolean, n)
}
