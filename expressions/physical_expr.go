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

// Package expressions implements physical expressions that are evaluated
// against arrow record batches, most notably the IN / NOT IN predicate.
//
// Every expression produces a compute.Datum which is either an array aligned
// with the batch or a scalar that is broadcast across it. The returned datum is
// owned by the caller and must be released.
package expressions

import (
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
)

// PhysicalExpr is a node of an executable expression tree. Implementations
// are immutable once built and may be evaluated concurrently.
type PhysicalExpr interface {
	fmt.Stringer
	// DataType is the type of the values Evaluate produces for batches
	// conforming to schema.
	DataType(schema *arrow.Schema) (arrow.DataType, error)
	// Nullable reports whether Evaluate may produce nulls.
	Nullable(schema *arrow.Schema) (bool, error)
	// Evaluate computes the expression for every row of batch. Output buffers
	// are allocated from the allocator carried by ctx, see
	// compute.WithAllocator.
	Evaluate(ctx context.Context, batch arrow.Record) (compute.Datum, error)
}
