package main

import "github.com/jsoncloak/jsoncloak/cmd/jsoncloak"

func main() { jsoncloak.Execute() }
