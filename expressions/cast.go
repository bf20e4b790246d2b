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
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/scalar"
)

// Cast converts the result of its operand to another type using safe
// (checked) cast semantics.
type Cast struct {
	expr PhysicalExpr
	to   arrow.DataType
}

func NewCast(expr PhysicalExpr, to arrow.DataType) *Cast {
	return &Cast{expr: expr, to: to}
}

// Expr is the operand being cast.
func (c *Cast) Expr() PhysicalExpr { return c.expr }

func (c *Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.expr, c.to) }

func (c *Cast) DataType(*arrow.Schema) (arrow.DataType, error) { return c.to, nil }

func (c *Cast) Nullable(schema *arrow.Schema) (bool, error) {
	return c.expr.Nullable(schema)
}

func (c *Cast) Evaluate(ctx context.Context, batch arrow.Record) (compute.Datum, error) {
	value, err := c.expr.Evaluate(ctx, batch)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case *compute.ScalarDatum:
		if arrow.TypeEqual(v.Value.DataType(), c.to) {
			return value, nil
		}
		defer value.Release()
		out, err := castScalar(v.Value, c.to)
		if err != nil {
			return nil, err
		}
		return compute.NewDatumWithoutOwning(out), nil
	case *compute.ArrayDatum:
		defer value.Release()
		arr := v.MakeArray()
		defer arr.Release()
		out, err := compute.CastArray(ctx, arr, compute.SafeCastOptions(c.to))
		if err != nil {
			return nil, err
		}
		defer out.Release()
		return compute.NewDatum(out), nil
	default:
		value.Release()
		return nil, fmt.Errorf("%w: cast of %s datum", arrow.ErrNotImplemented, value.Kind())
	}
}

func castScalar(s scalar.Scalar, to arrow.DataType) (scalar.Scalar, error) {
	if arrow.TypeEqual(s.DataType(), to) {
		return s, nil
	}
	out, err := s.CastTo(to)
	if err != nil {
		return nil, fmt.Errorf("cannot cast %s to %s: %w", s, to, err)
	}
	return out, nil
}
