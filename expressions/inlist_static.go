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

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/scalar"
)

// isStaticList reports whether every member is a literal or a cast of a
// literal. Only the shape is inspected; nothing is evaluated.
func isStaticList(list []PhysicalExpr) bool {
	for _, e := range list {
		switch e := e.(type) {
		case *Literal:
		case *Cast:
			if _, ok := e.Expr().(*Literal); !ok {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// constantValue returns the value of a member accepted by isStaticList, with
// any cast applied.
func constantValue(e PhysicalExpr) (scalar.Scalar, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value(), nil
	case *Cast:
		if lit, ok := e.Expr().(*Literal); ok {
			return castScalar(lit.Value(), e.to)
		}
	}
	return nil, fmt.Errorf("%w: %s is not a constant", arrow.ErrInvalid, e)
}

// materialize builds the lookup set for a static list probed with values
// of type dt.
func materialize(dt arrow.DataType, list []PhysicalExpr) (inSet, error) {
	m, err := membershipFor(dt)
	if err != nil {
		return nil, err
	}

	values := make([]scalar.Scalar, len(list))
	for i, e := range list {
		if values[i], err = constantValue(e); err != nil {
			return nil, err
		}
	}
	return m.materialize(values)
}

func checkListTypes(exprType arrow.DataType, list []PhysicalExpr, schema *arrow.Schema) error {
	if exprType.ID() == arrow.NULL {
		return nil
	}

	for i, e := range list {
		if lit, ok := e.(*Literal); ok && !lit.Value().IsValid() {
			continue
		}
		dt, err := e.DataType(schema)
		if err != nil {
			return err
		}
		if dt.ID() == arrow.NULL || compatibleTypes(dt, exprType) {
			continue
		}
		return fmt.Errorf("%w: IN list item %d (%s) has type %s, expected %s",
			arrow.ErrType, i, e, dt, exprType)
	}
	return nil
}

// compatibleTypes reports whether a list member of type member can be
// compared with a probe of type probe. Both string encodings compare as Go
// strings, so they are interchangeable.
func compatibleTypes(member, probe arrow.DataType) bool {
	if isString(member) && isString(probe) {
		return true
	}
	return arrow.TypeEqual(member, probe)
}

func isString(dt arrow.DataType) bool {
	return dt.ID() == arrow.STRING || dt.ID() == arrow.LARGE_STRING
}
