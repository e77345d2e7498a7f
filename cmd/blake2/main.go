// Command blake2 hashes text, files, and file batches with BLAKE2b or
// BLAKE2s, optionally keyed, salted, and personalized, and verifies digests
// against an expected value or a sha256sum-style manifest.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "blake2",
		Usage:  "compute and verify BLAKE2b / BLAKE2s digests",
		Flags:  rootFlags(),
		Action: runHash,
		Commands: []*cli.Command{
			{
				Name:      "batch",
				Usage:     "hash multiple files concurrently",
				ArgsUsage: "FILE...",
				Flags:     batchFlags(),
				Action:    runBatch,
			},
			{
				Name:   "verify",
				Usage:  "check files against a manifest of expected digests",
				Flags:  verifyFlags(),
				Action: runVerifyManifest,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
