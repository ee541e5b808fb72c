package jsoncloak

// The pick helpers resolve one setting across layers: the CLI value first,
// then each config layer in order (env, local, global). An empty or zero CLI
// value and a nil layer value mean "not set".

func pickString(cli string, layers ...*string) string {
	if cli != "" {
		return cli
	}
	for _, l := range layers {
		if l != nil && *l != "" {
			return *l
		}
	}
	return ""
}

func pickInt(cli int, layers ...*int) int {
	if cli != 0 {
		return cli
	}
	for _, l := range layers {
		if l != nil && *l != 0 {
			return *l
		}
	}
	return 0
}

func pickBool(cli bool, layers ...*bool) bool {
	if cli {
		return true
	}
	for _, l := range layers {
		if l != nil {
			return *l
		}
	}
	return false
}

func pickStrings(layers ...[]string) []string {
	for _, l := range layers {
		if l != nil {
			return l
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func boolPtr(v bool) *bool { return &v }
