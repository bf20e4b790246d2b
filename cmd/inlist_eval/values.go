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

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow-go-physexpr/expressions"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/scalar"
	"github.com/goccy/go-json"
)

// parseValues decodes a JSON array of candidate values. Numbers are kept as
// json.Number so integers are not widened to float64.
func parseValues(src string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()

	var values []any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("%w: values must be a JSON array: %s", arrow.ErrInvalid, err)
	}
	return values, nil
}

// literals turns decoded values into list members for a column of type dt.
// A value whose natural type differs from dt is wrapped in a cast.
func literals(values []any, dt arrow.DataType) ([]expressions.PhysicalExpr, error) {
	out := make([]expressions.PhysicalExpr, 0, len(values))
	for _, v := range values {
		var s scalar.Scalar
		switch v := v.(type) {
		case nil:
			s = scalar.MakeNullScalar(dt)
		case bool:
			s = scalar.NewBooleanScalar(v)
		case string:
			s = scalar.NewStringScalar(v)
		case json.Number:
			if i, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
				s = scalar.NewInt64Scalar(i)
			} else if f, err := v.Float64(); err == nil {
				s = scalar.NewFloat64Scalar(f)
			} else {
				return nil, fmt.Errorf("%w: bad number %s", arrow.ErrInvalid, v)
			}
		default:
			return nil, fmt.Errorf("%w: unsupported value %v of type %T", arrow.ErrInvalid, v, v)
		}

		var e expressions.PhysicalExpr = expressions.NewLiteral(s)
		if !arrow.TypeEqual(s.DataType(), dt) {
			e = expressions.NewCast(e, dt)
		}
		out = append(out, e)
	}
	return out, nil
}
