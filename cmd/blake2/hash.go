package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	blake2 "github.com/daemonX10/blake2"
	"github.com/daemonX10/blake2/blake2b"
	"github.com/daemonX10/blake2/blake2s"
)

// runHash implements the root command: hash a single text argument or
// file, optionally keyed/salted/personalized, optionally verifying the
// result against an expected hex digest.
func runHash(c *cli.Context) error {
	alg, defaultSize, err := resolveAlgorithm(c.String("algorithm"))
	if err != nil {
		return err
	}

	text := c.Args().First()
	file := c.String("file")

	var data []byte
	switch {
	case file != "" && text != "":
		return fmt.Errorf("provide either TEXT or -f FILE, not both")
	case file != "":
		data, err = os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		fmt.Printf("File: %s\n", file)
		fmt.Printf("Size: %d bytes\n", len(data))
	case text != "":
		data = []byte(text)
		fmt.Printf("Text: %s\n", text)
	default:
		return fmt.Errorf("provide TEXT or -f FILE")
	}

	size := c.Int("size")
	if size == 0 {
		size = defaultSize
	}

	key := []byte(c.String("key"))
	salt := []byte(c.String("salt"))
	person := []byte(c.String("person"))

	var digest []byte
	switch alg {
	case blake2.Blake2bAlgorithm:
		digest, err = blake2.Blake2b(data, size, key, salt, person)
	case blake2.Blake2sAlgorithm:
		digest, err = blake2.Blake2s(data, size, key, salt, person)
	}
	if err != nil {
		return err
	}
	hexDigest := fmt.Sprintf("%x", digest)

	fmt.Printf("\nAlgorithm: %s\n", algorithmLabel(alg))
	fmt.Printf("Digest size: %d bytes (%d bits)\n", size, size*8)
	if len(key) > 0 {
		fmt.Printf("Key: %s\n", c.String("key"))
	}
	if len(salt) > 0 {
		fmt.Printf("Salt: %s\n", c.String("salt"))
	}
	if len(person) > 0 {
		fmt.Printf("Personalization: %s\n", c.String("person"))
	}
	fmt.Printf("\nHash: %s\n", hexDigest)

	expected := c.String("verify")
	if expected == "" {
		return nil
	}

	ok, err := blake2.Verify(alg, data, size, key, salt, person, expected)
	if err != nil {
		return fmt.Errorf("verification: %w", err)
	}
	if ok {
		fmt.Println("\nVERIFICATION PASSED")
		return nil
	}
	fmt.Println("\nVERIFICATION FAILED")
	fmt.Printf("Expected: %s\n", expected)
	fmt.Printf("Actual:   %s\n", hexDigest)
	return fmt.Errorf("hash mismatch")
}

func resolveAlgorithm(name string) (blake2.Algorithm, int, error) {
	switch name {
	case "blake2b":
		return blake2.Blake2bAlgorithm, blake2b.MaxOutput, nil
	case "blake2s":
		return blake2.Blake2sAlgorithm, blake2s.MaxOutput, nil
	default:
		return "", 0, fmt.Errorf("unknown algorithm %q (want blake2b or blake2s)", name)
	}
}

func algorithmLabel(alg blake2.Algorithm) string {
	switch alg {
	case blake2.Blake2bAlgorithm:
		return "BLAKE2B"
	case blake2.Blake2sAlgorithm:
		return "BLAKE2S"
	default:
		return string(alg)
	}
}
