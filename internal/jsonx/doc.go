// Package jsonx holds the text-level JSON machinery behind jsoncloak: comment
// stripping, an order-preserving value tree, the per-character escape
// transform and a compact writer that keeps escape sequences as literal text.
package jsonx
