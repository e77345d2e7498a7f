package main

import "github.com/urfave/cli/v2"

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "file to hash"},
		&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: "blake2b", Usage: "blake2b or blake2s"},
		&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Usage: "digest size in bytes (default 64 for blake2b, 32 for blake2s)"},
		&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "key for keyed hashing (MAC)"},
		&cli.StringFlag{Name: "salt", Usage: "salt value"},
		&cli.StringFlag{Name: "person", Usage: "personalization string"},
		&cli.StringFlag{Name: "verify", Aliases: []string{"v"}, Usage: "expected hex digest to verify against"},
	}
}

func batchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: "blake2b", Usage: "blake2b or blake2s"},
		&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Usage: "digest size in bytes (default 64 for blake2b, 32 for blake2s)"},
		&cli.BoolFlag{Name: "tag", Usage: "prefix the report with a session identifier"},
	}
}

func verifyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Required: true, Usage: "manifest of \"hex-digest  filename\" lines"},
		&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: "blake2b", Usage: "blake2b or blake2s"},
		&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Usage: "digest size in bytes (default 64 for blake2b, 32 for blake2s)"},
	}
}
