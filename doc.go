// Package wgtools provides tools for working with WordGrain documents.
//
// A WordGrain document ("word-grain", file extension .wg.json) records per-word
// frequency, sentiment and contextual usage for a corpus of lyrics or text. It has
// three top-level members: $schema, meta and a grains array.
//
// # Overview
//
// The library consists of the following packages:
//
//   - parser: Load JSON or YAML into an order-preserving value tree
//   - schema: Resolve $ref pointers and compile JSON Schema documents
//   - validator: Validate any value against a compiled schema
//   - differ: Compute a structural delta between two documents
//   - formatter: Classify and flatten delta nodes for display
//   - wordgrain: The embedded WordGrain schema, typed model and statistics
//   - wgerrors: Structured error types shared by all packages
//
// # Installation
//
//	go get github.com/wordgrain/wgtools
//
// # Quick Start
//
// Validate a document against the embedded WordGrain schema:
//
//	import (
//		"github.com/wordgrain/wgtools/validator"
//		"github.com/wordgrain/wgtools/wordgrain"
//	)
//
//	s, err := wordgrain.Schema()
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := validator.ValidateWithOptions(
//		validator.WithFilePath("kendrick-lamar.wg.json"),
//		validator.WithSchema(s),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Valid {
//		for _, e := range result.Errors {
//			fmt.Println(e.Path, e.Message)
//		}
//	}
//
// Diff two documents, matching grains by word:
//
//	import "github.com/wordgrain/wgtools/differ"
//
//	delta, err := differ.Diff(left, right)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if delta == nil {
//		fmt.Println("no differences")
//	}
//
// # Command-Line Tool
//
// The wgtools command exposes the same operations:
//
//	wgtools validate doc.wg.json
//	wgtools diff --align identity old.wg.json new.wg.json
//	wgtools stats left.wg.json right.wg.json
//	wgtools schema
//	wgtools mcp
//
// See the individual package documentation for detailed usage.
package wgtools
