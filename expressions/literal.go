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

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/scalar"
)

// Literal is a constant. It always evaluates to a scalar datum.
type Literal struct {
	value scalar.Scalar
}

func NewLiteral(value scalar.Scalar) *Literal { return &Literal{value: value} }

// Value returns the constant without transferring ownership.
func (l *Literal) Value() scalar.Scalar { return l.value }

func (l *Literal) String() string { return l.value.String() }

func (l *Literal) DataType(*arrow.Schema) (arrow.DataType, error) {
	return l.value.DataType(), nil
}

func (l *Literal) Nullable(*arrow.Schema) (bool, error) {
	return !l.value.IsValid(), nil
}

func (l *Literal) Evaluate(context.Context, arrow.Record) (compute.Datum, error) {
	return compute.NewDatum(l.value), nil
}
