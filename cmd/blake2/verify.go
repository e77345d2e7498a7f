package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	blake2 "github.com/daemonX10/blake2"
)

// manifestEntry is one parsed line of a sha256sum-style manifest: a hex
// digest followed by the filename it was computed over.
type manifestEntry struct {
	digest string
	file   string
}

func parseManifest(path string) ([]manifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []manifestEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed manifest line: %q", line)
		}
		entries = append(entries, manifestEntry{digest: fields[0], file: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// runVerifyManifest checks every file named in a manifest against its
// expected digest and reports per-file PASS/FAIL.
func runVerifyManifest(c *cli.Context) error {
	alg, defaultSize, err := resolveAlgorithm(c.String("algorithm"))
	if err != nil {
		return err
	}
	size := c.Int("size")
	if size == 0 {
		size = defaultSize
	}

	entries, err := parseManifest(c.String("manifest"))
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	anyFailed := false
	for _, entry := range entries {
		data, err := os.ReadFile(entry.file)
		if err != nil {
			fmt.Printf("%s: FAIL (%v)\n", entry.file, err)
			anyFailed = true
			continue
		}

		ok, err := blake2.Verify(alg, data, size, nil, nil, nil, entry.digest)
		if err != nil {
			fmt.Printf("%s: FAIL (%v)\n", entry.file, err)
			anyFailed = true
			continue
		}
		if ok {
			fmt.Printf("%s: PASS\n", entry.file)
		} else {
			fmt.Printf("%s: FAIL\n", entry.file)
			anyFailed = true
		}
	}

	if anyFailed {
		return fmt.Errorf("one or more files failed verification")
	}
	return nil
}
