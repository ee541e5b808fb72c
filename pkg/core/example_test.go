package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/jsoncloak/jsoncloak/pkg/core"
)

// ExampleTransform obfuscates a single document in memory.
func ExampleTransform() {
	out, err := core.Transform([]byte(`{"a": "b"} // trailing note`), core.CommentsCompat, false)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
	// Output: {"\u0061":"\u0062"}
}

// ExampleRun processes a data directory with the default policy.
func ExampleRun() {
	cfg := core.Config{
		Root:    "data",
		Policy:  core.DefaultPolicy(),
		Threads: 4,
		DryRun:  true, // report what would change without writing
	}

	res, err := core.Run(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		return
	}

	s := res.Summary()
	fmt.Printf("%d files, %d to encrypt\n", res.FilesFound, s.Planned)
	_ = core.WriteReport(os.Stdout, cfg.Root, res, cfg.DryRun)
}
