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
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/apache/arrow-go-physexpr/internal/kernels"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/scalar"
	"go.uber.org/zap"
)

// inSetThreshold is the list length above which a static list is
// materialized into a hash set. Below it a linear scan of the list is
// cheaper.
const inSetThreshold = 30

// Option configures an InList at construction.
type Option func(*inListConfig)

type inListConfig struct {
	logger *zap.Logger
}

// WithLogger sets the logger used to report construction decisions. The
// default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *inListConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// InList is the "expr [NOT] IN (list...)" predicate.
//
// The strategy is chosen once by NewInList: a static list longer than
// inSetThreshold is materialized into a set, anything else is evaluated for
// every batch. Either way the result follows SQL three-valued logic: a null
// probe yields null, a match yields true (false when negated) and a miss
// yields null if the list produced a null, false (true when negated)
// otherwise.
type InList struct {
	expr    PhysicalExpr
	list    []PhysicalExpr
	negated bool

	set     inSet
	setType arrow.DataType
}

// NewInList builds the predicate, checking that every list member has the
// probe's type. Null literals of any type and members of the null type are
// accepted, as is anything when the probe itself is of the null type.
func NewInList(expr PhysicalExpr, list []PhysicalExpr, negated bool, schema *arrow.Schema, opts ...Option) (*InList, error) {
	cfg := inListConfig{logger: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}

	exprType, err := expr.DataType(schema)
	if err != nil {
		return nil, err
	}
	if err := checkListTypes(exprType, list, schema); err != nil {
		return nil, err
	}

	in := &InList{expr: expr, list: slices.Clone(list), negated: negated}
	if len(list) > inSetThreshold && isStaticList(list) {
		set, err := materialize(exprType, list)
		switch {
		case errors.Is(err, arrow.ErrNotImplemented):
			// evaluation reports the unsupported type for every batch
			cfg.logger.Debug("in-list set not materialized",
				zap.Stringer("expr_type", exprType), zap.Error(err))
		case err != nil:
			return nil, err
		default:
			in.set, in.setType = set, exprType
		}
	}

	fields := []zap.Field{
		zap.Stringer("expr", expr),
		zap.Int("list_len", len(list)),
		zap.Bool("negated", negated),
	}
	if in.set != nil {
		fields = append(fields, zap.String("strategy", "set"), zap.Int("set_len", in.set.len()))
	} else {
		fields = append(fields, zap.String("strategy", "list"))
	}
	cfg.logger.Debug("in-list strategy selected", fields...)

	return in, nil
}

// Expr is the probe expression.
func (in *InList) Expr() PhysicalExpr { return in.expr }

// List is the candidate list in its original order.
func (in *InList) List() []PhysicalExpr { return in.list }

// Negated reports whether this is NOT IN.
func (in *InList) Negated() bool { return in.negated }

// UsesSet reports whether the list was materialized into a set.
func (in *InList) UsesSet() bool { return in.set != nil }

func (in *InList) String() string {
	var b strings.Builder
	b.WriteString(in.expr.String())
	if in.negated {
		b.WriteString(" NOT")
	}
	b.WriteString(" IN ")
	if in.set != nil {
		b.WriteString("(SET) ")
	}
	b.WriteString("([")
	for i, e := range in.list {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString("])")
	return b.String()
}

func (in *InList) DataType(*arrow.Schema) (arrow.DataType, error) {
	return arrow.FixedWidthTypes.Boolean, nil
}

// Nullable is true when either the probe or a list member can be null.
func (in *InList) Nullable(schema *arrow.Schema) (bool, error) {
	nullable, err := in.expr.Nullable(schema)
	if err != nil || nullable {
		return nullable, err
	}
	for _, e := range in.list {
		if nullable, err = e.Nullable(schema); err != nil || nullable {
			return nullable, err
		}
	}
	return false, nil
}

// Evaluate returns a boolean array with one entry per row of batch, or per
// element of the probe when it evaluates to an array.
func (in *InList) Evaluate(ctx context.Context, batch arrow.Record) (compute.Datum, error) {
	mem := compute.GetAllocator(ctx)

	value, err := in.expr.Evaluate(ctx, batch)
	if err != nil {
		return nil, err
	}
	defer value.Release()

	arr, err := probeArray(mem, value, int(batch.NumRows()))
	if err != nil {
		return nil, err
	}
	defer arr.Release()

	var out arrow.Array
	if in.set != nil {
		if !arrow.TypeEqual(arr.DataType(), in.setType) {
			return nil, fmt.Errorf("%w: IN set was built for %s, probe evaluated to %s",
				arrow.ErrType, in.setType, arr.DataType())
		}
		out, err = in.set.probe(mem, arr, in.negated)
	} else {
		out, err = in.probeList(ctx, mem, batch, arr)
	}
	if err != nil {
		return nil, err
	}
	defer out.Release()
	return compute.NewDatum(out), nil
}

func (in *InList) probeList(ctx context.Context, mem memory.Allocator, batch arrow.Record, arr arrow.Array) (arrow.Array, error) {
	// a null probe is unknown whatever the list holds
	if arr.DataType().ID() == arrow.NULL {
		return kernels.NullBooleans(mem, arr.Len()), nil
	}

	m, err := membershipFor(arr.DataType())
	if err != nil {
		return nil, err
	}

	values := make([]scalar.Scalar, 0, len(in.list))
	for _, e := range in.list {
		d, err := e.Evaluate(ctx, batch)
		if err != nil {
			return nil, err
		}
		defer d.Release()

		s, ok := d.(*compute.ScalarDatum)
		if !ok {
			return nil, fmt.Errorf("%w: IN list does not support nested columns, %s evaluated to %s",
				arrow.ErrNotImplemented, e, d.Kind())
		}
		values = append(values, s.Value)
	}
	return m.probeList(mem, arr, values, in.negated)
}

// probeArray turns the probe datum into an array, broadcasting scalars to
// the batch length.
func probeArray(mem memory.Allocator, value compute.Datum, n int) (arrow.Array, error) {
	switch v := value.(type) {
	case *compute.ArrayDatum:
		return v.MakeArray(), nil
	case *compute.ScalarDatum:
		return scalar.MakeArrayFromScalar(v.Value, n, mem)
	default:
		return nil, fmt.Errorf("%w: IN probe evaluated to %s", arrow.ErrNotImplemented, value.Kind())
	}
}
