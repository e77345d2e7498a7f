package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	blake2 "github.com/daemonX10/blake2"
)

// runBatch hashes every file argument concurrently and prints a
// "file  hex-digest" table in input order.
func runBatch(c *cli.Context) error {
	alg, defaultSize, err := resolveAlgorithm(c.String("algorithm"))
	if err != nil {
		return err
	}

	files := c.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("batch requires at least one FILE")
	}

	size := c.Int("size")
	if size == 0 {
		size = defaultSize
	}

	if c.Bool("tag") {
		fmt.Printf("Session: %s\n", uuid.New().String())
	}

	digests := make([]string, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			var digest []byte
			switch alg {
			case blake2.Blake2bAlgorithm:
				digest, err = blake2.Blake2b(data, size, nil, nil, nil)
			case blake2.Blake2sAlgorithm:
				digest, err = blake2.Blake2s(data, size, nil, nil, nil)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			digests[i] = fmt.Sprintf("%x", digest)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, file := range files {
		fmt.Printf("%s  %s\n", file, digests[i])
	}
	return nil
}
