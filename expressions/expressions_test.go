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

package expressions_test

import (
	"context"
	"strings"
	"testing"

	"github.com/apache/arrow-go-physexpr/expressions"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/scalar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecord(t *testing.T, mem memory.Allocator) arrow.Record {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "i32", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
		{Name: "str", Type: arrow.BinaryTypes.String},
	}, nil)
	rec, _, err := array.RecordFromJSON(mem, schema, strings.NewReader(`[
		{"i32": 1, "str": "a"},
		{"i32": null, "str": "b"},
		{"i32": 3, "str": "c"}
	]`))
	require.NoError(t, err)
	return rec
}

func TestColumn(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)
	rec := makeRecord(t, mem)
	defer rec.Release()

	col, err := expressions.NewColumn("str", rec.Schema())
	require.NoError(t, err)
	assert.Equal(t, "str@1", col.String())
	assert.Equal(t, 1, col.Index())

	dt, err := col.DataType(rec.Schema())
	require.NoError(t, err)
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, dt))
	nullable, err := col.Nullable(rec.Schema())
	require.NoError(t, err)
	assert.False(t, nullable)

	out, err := col.Evaluate(context.Background(), rec)
	require.NoError(t, err)
	defer out.Release()
	require.Equal(t, compute.KindArray, out.Kind())
	arr := out.(*compute.ArrayDatum).MakeArray()
	defer arr.Release()
	assert.True(t, array.Equal(rec.Column(1), arr))

	_, err = expressions.NewColumn("missing", rec.Schema())
	assert.ErrorIs(t, err, arrow.ErrInvalid)
}

func TestLiteral(t *testing.T) {
	l := expressions.NewLiteral(scalar.MakeScalar(int64(42)))
	assert.Equal(t, "42", l.String())
	nullable, err := l.Nullable(nil)
	require.NoError(t, err)
	assert.False(t, nullable)

	out, err := l.Evaluate(context.Background(), nil)
	require.NoError(t, err)
	defer out.Release()
	require.Equal(t, compute.KindScalar, out.Kind())
	assert.True(t, scalar.Equals(l.Value(), out.(*compute.ScalarDatum).Value))

	n := expressions.NewLiteral(scalar.MakeNullScalar(arrow.PrimitiveTypes.Int64))
	nullable, err = n.Nullable(nil)
	require.NoError(t, err)
	assert.True(t, nullable)
}

func TestCast(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)
	ctx := compute.WithAllocator(context.Background(), mem)
	rec := makeRecord(t, mem)
	defer rec.Release()

	t.Run("array", func(t *testing.T) {
		col, err := expressions.NewColumn("i32", rec.Schema())
		require.NoError(t, err)
		c := expressions.NewCast(col, arrow.PrimitiveTypes.Int64)
		assert.Equal(t, "CAST(i32@0 AS int64)", c.String())

		nullable, err := c.Nullable(rec.Schema())
		require.NoError(t, err)
		assert.True(t, nullable)

		out, err := c.Evaluate(ctx, rec)
		require.NoError(t, err)
		defer out.Release()
		arr := out.(*compute.ArrayDatum).MakeArray()
		defer arr.Release()

		expected, _, err := array.FromJSON(mem, arrow.PrimitiveTypes.Int64, strings.NewReader(`[1, null, 3]`))
		require.NoError(t, err)
		defer expected.Release()
		assert.Truef(t, array.Equal(expected, arr), "expected: %s\ngot: %s", expected, arr)
	})

	t.Run("scalar", func(t *testing.T) {
		c := expressions.NewCast(expressions.NewLiteral(scalar.MakeScalar(int32(7))), arrow.PrimitiveTypes.Int64)
		out, err := c.Evaluate(ctx, rec)
		require.NoError(t, err)
		defer out.Release()
		require.Equal(t, compute.KindScalar, out.Kind())
		assert.True(t, scalar.Equals(scalar.MakeScalar(int64(7)), out.(*compute.ScalarDatum).Value))
	})

	t.Run("invalid", func(t *testing.T) {
		c := expressions.NewCast(expressions.NewLiteral(scalar.MakeScalar("seven")), arrow.PrimitiveTypes.Int64)
		_, err := c.Evaluate(ctx, rec)
		assert.Error(t, err)
	})
}
