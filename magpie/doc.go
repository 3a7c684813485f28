// Package magpie loads elemental property tables in the Magpie flat format:
// one value per line, where line k holds the value for atomic number k+1.
// Non-numeric lines mark entries that are undefined for that element.
//
// Tables are served by a Source (local directory, in-memory, S3 or
// MinIO-backed) and cached by a Store. The store scans the source catalog
// once, parses each table at most once and hands out shared immutable
// *Table values that are safe for concurrent use.
package magpie
