// Package jsoncloak provides the command-line interface for the jsoncloak
// tool. The root command obfuscates a data directory; subcommands help with
// configuration, run history and shell completion.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/jsoncloak/jsoncloak/cmd/jsoncloak"
//	func main() { jsoncloak.Execute() }
package jsoncloak
