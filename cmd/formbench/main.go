package main

import (
	"os"
	"strings"

	"formbench/internal/cli"
	"formbench/internal/model"
)

func isPaletteKind(s string) bool {
	_, ok := model.DefaultCatalog().Lookup(model.Kind(strings.TrimSpace(s)))
	return ok
}

func rewriteDirectAddArgs(argv []string) []string {
	// Convenience: `formbench input` works like `formbench add input`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
	// before parsing. Persistent flags may come first (`formbench --dir ... input`),
	// so the first positional token is what counts, not argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--workspace": true,
		"--catalog":   true,
		"--format":    true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insertAdd := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "add")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isPaletteKind(argv[i+1]) {
				return insertAdd(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isPaletteKind(a) {
			return insertAdd(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectAddArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
