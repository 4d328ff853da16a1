/*
Package formatter turns differ deltas into display rows.

Classify maps a typed delta node to one Kind; ClassifyRaw does the same for
the jsondiffpatch wire form after it has been decoded from JSON, for example
a delta produced by another tool. Both are total: shapes they do not
recognize are KindUnknown and consumers skip them.

Flatten walks a delta depth first and produces one Entry per node, with
array keys displayed as [N]. Entry.String renders the row the way the
command line prints it:

	+ language: "en"
	- [2]: "humble"
	~ frequency: 47 -> 52
	↔ [0]: moved to index 1
*/
package formatter
