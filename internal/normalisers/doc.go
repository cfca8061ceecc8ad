// Package normalisers converts raw source files into domain Documents.
// Each subpackage handles one family of file formats and is responsible
// for extracting and cleaning the text before it reaches the chunker.
package normalisers
