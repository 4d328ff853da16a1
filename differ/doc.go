/*
Package differ computes structural deltas between two JSON documents.

# Overview

Diff walks both values in parallel and builds a tree of changes. Objects are
compared key by key; arrays are aligned element by element using an identity
function, so a grain that moved in the grains array is reported as a move
rather than as a deletion plus an addition.

A nil Delta means the documents are equal. An error means no diff could be
computed, which happens only for values with no JSON form or nesting deeper
than MaxDepth.

# Delta Kinds

  - Added: a value only the new document has
  - Deleted: a value only the old document has
  - Modified: a value both documents have, with different content
  - Moved: an array element that now lives at another index
  - ObjectDelta: changed members of an object, in union order
  - ArrayDelta: changed positions of an array, keyed "N" (new index) or "_N" (old index)

# Array Alignment

AlignIdentity (the default) pairs each old element with the first unclaimed
new element that has the same identity. Paired elements at a different index
are reported as moved, with any content change recorded at the new index.
AlignLCS keeps the longest common subsequence of identities in place, so
elements that only shifted because of insertions or removals are not moves.

Identity comes from an IdentityFunc. DefaultIdentity keys objects by their
"word" field and everything else by its canonical JSON form.

# Options

DiffWithOptions takes exactly one source and one target:

	WithSourceValue   old document as a value
	WithSourceParsed  old document as a parser.ParseResult
	WithTargetValue   new document as a value
	WithTargetParsed  new document as a parser.ParseResult
	WithAlignment     AlignIdentity or AlignLCS
	WithIdentity      array element key function
	WithMaxDepth      nesting limit (default 1000)
	WithLogger        structured logger

# Wire Form

Every Delta marshals to the jsondiffpatch format:

	added     [value]
	modified  [old, new]
	deleted   [old, 0, 0]
	moved     ["", to, 3]
	array     {"_t": "a", "N": ..., "_N": ...}
	object    {"key": ...}

# Example

	delta, err := differ.Diff(before, after)
	if err != nil {
		log.Fatal(err)
	}
	if delta == nil {
		fmt.Println("documents are identical")
	}
	out, _ := json.Marshal(delta)
	fmt.Println(string(out))

# Related Packages

The formatter package classifies delta nodes and flattens a delta into rows
for display. The parser package provides the ordered value model Diff walks.
*/
package differ
