/*
Package wordgrain holds the WordGrain document format: the embedded v0.1.0
JSON Schema, a typed model of documents, and the statistics the command line
and MCP server report.

# Schema

RawSchema returns the embedded schema bytes and Schema the compiled form,
built once per process:

	s, err := wordgrain.Schema()
	if err != nil {
		log.Fatal(err)
	}
	result := validator.New().ValidateBytes(s, data)

# Documents

Decode converts a validated value into a Document. Optional numeric fields
are pointers so that a missing frequency is distinguishable from zero.

# Identity

Identity keys grains by their word and is the identity the differ uses by
default. NormalizedIdentity keys them by the NFC, case-folded form of
"normalized" (or "word" when absent), so "Hustle" and "hustle" pair up.
*/
package wordgrain
