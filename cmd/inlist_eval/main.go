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

// Command inlist_eval evaluates "column [NOT] IN (values...)" over the rows
// of a CSV file and prints the result of every row.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/apache/arrow-go-physexpr/expressions"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/compute"
	arrowcsv "github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/docopt/docopt-go"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

const usage = `Evaluate an IN list predicate over a CSV file.

Usage:
  inlist_eval [--negate] [--verbose] [--chunk=<rows>] <file> <column> <values>
  inlist_eval -h | --help

Options:
  -h --help       Show this screen.
  --negate        Evaluate NOT IN instead of IN.
  --verbose       Log how the predicate is built.
  --chunk=<rows>  Rows per record batch [default: 1024].

<file> must have a header line; column types are inferred and empty cells
are null. <values> is a JSON array such as '[1, 2, null]' or '["a", "b"]'.
`

type config struct {
	Negate  bool   `docopt:"--negate"`
	Verbose bool   `docopt:"--verbose"`
	Chunk   string `docopt:"--chunk"`
	File    string `docopt:"<file>"`
	Column  string `docopt:"<column>"`
	Values  string `docopt:"<values>"`
}

func main() {
	opts, _ := docopt.ParseDoc(usage)
	var cfg config
	if err := opts.Bind(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error parsing arguments:", err)
		os.Exit(2)
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, "error creating logger:", err)
			os.Exit(1)
		}
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(context.Background(), logger, cfg); err != nil {
		logger.Error("evaluation failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, cfg config) error {
	chunk, err := strconv.Atoi(cfg.Chunk)
	if err != nil {
		return fmt.Errorf("invalid --chunk: %w", err)
	}
	values, err := parseValues(cfg.Values)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.File)
	if err != nil {
		return err
	}
	defer f.Close()

	mem := memory.NewGoAllocator()
	ctx = compute.WithAllocator(ctx, mem)

	reader := arrowcsv.NewInferringReader(f,
		arrowcsv.WithAllocator(mem),
		arrowcsv.WithHeader(true),
		arrowcsv.WithNullReader(true, ""),
		arrowcsv.WithChunk(chunk))
	defer reader.Release()

	var (
		predicate *expressions.InList
		column    *expressions.Column
		offset    int
		rows      = pterm.TableData{{"row", cfg.Column, "result"}}
	)
	for reader.Next() {
		rec := reader.Record()
		if predicate == nil {
			if column, err = expressions.NewColumn(cfg.Column, rec.Schema()); err != nil {
				return err
			}
			dt := rec.Schema().Field(column.Index()).Type
			list, err := literals(values, dt)
			if err != nil {
				return err
			}
			predicate, err = expressions.NewInList(column, list, cfg.Negate, rec.Schema(),
				expressions.WithLogger(logger))
			if err != nil {
				return err
			}
			logger.Info("evaluating", zap.Stringer("predicate", predicate), zap.Stringer("type", dt))
		}

		result, err := evaluate(ctx, predicate, rec)
		if err != nil {
			return err
		}
		input := rec.Column(column.Index())
		for i := 0; i < result.Len(); i++ {
			rows = append(rows, []string{strconv.Itoa(offset + i), input.ValueStr(i), result.ValueStr(i)})
		}
		offset += result.Len()
		result.Release()
	}
	if err := reader.Err(); err != nil {
		return err
	}

	return pterm.DefaultTable.WithHasHeader(true).WithData(rows).Render()
}

func evaluate(ctx context.Context, predicate *expressions.InList, rec arrow.Record) (arrow.Array, error) {
	out, err := predicate.Evaluate(ctx, rec)
	if err != nil {
		return nil, err
	}
	defer out.Release()
	return out.(*compute.ArrayDatum).MakeArray(), nil
}
