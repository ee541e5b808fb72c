// Package engine contains the core pipeline of jsoncloak. It enumerates JSON
// files under a data root, decides per file whether to encrypt and rename
// them, rewrites contents and renames files to their content hash, and
// reports a per-file outcome. This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine
