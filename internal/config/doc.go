// Package config loads jsoncloak configuration from local and global YAML
// files and from JSONCLOAK_* environment variables. It is internal; CLI code
// merges the layers and maps them into engine configuration.
package config
