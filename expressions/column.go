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
)

// Column references a field of the input batch by position.
type Column struct {
	name  string
	index int
}

// NewColumn resolves name against schema. It fails if the name is unknown or
// ambiguous.
func NewColumn(name string, schema *arrow.Schema) (*Column, error) {
	indices := schema.FieldIndices(name)
	switch len(indices) {
	case 0:
		return nil, fmt.Errorf("%w: no field named %q in schema", arrow.ErrInvalid, name)
	case 1:
		return &Column{name: name, index: indices[0]}, nil
	default:
		return nil, fmt.Errorf("%w: field name %q is ambiguous", arrow.ErrInvalid, name)
	}
}

func (c *Column) Name() string { return c.name }
func (c *Column) Index() int   { return c.index }

func (c *Column) String() string { return fmt.Sprintf("%s@%d", c.name, c.index) }

func (c *Column) field(schema *arrow.Schema) (arrow.Field, error) {
	if c.index >= schema.NumFields() {
		return arrow.Field{}, fmt.Errorf("%w: column %s out of range for schema with %d fields",
			arrow.ErrIndex, c, schema.NumFields())
	}
	return schema.Field(c.index), nil
}

func (c *Column) DataType(schema *arrow.Schema) (arrow.DataType, error) {
	f, err := c.field(schema)
	if err != nil {
		return nil, err
	}
	return f.Type, nil
}

func (c *Column) Nullable(schema *arrow.Schema) (bool, error) {
	f, err := c.field(schema)
	if err != nil {
		return false, err
	}
	return f.Nullable, nil
}

func (c *Column) Evaluate(_ context.Context, batch arrow.Record) (compute.Datum, error) {
	if c.index >= int(batch.NumCols()) {
		return nil, fmt.Errorf("%w: column %s out of range for batch with %d columns",
			arrow.ErrIndex, c, batch.NumCols())
	}
	return compute.NewDatum(batch.Column(c.index)), nil
}
