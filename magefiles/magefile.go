//go:build mage

// Package main contains Mage build targets for idea-swipe developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target when mage is run without arguments.
var Default = Build

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	"data",
	".secrets",
}

// Init creates the local data and secrets directories.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	keyPath := filepath.Join(".secrets", "openai-api-key")
	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
		fmt.Printf("Write your API key to %s before running swipe or generate.\n", keyPath)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "idea-swipe"
	cmdPkg  = "./cmd/idea-swipe"
)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	ver, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || ver == "" {
		ver = "dev"
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + ver
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, ver)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Check runs vet and tests, then builds.
func Check() {
	mg.SerialDeps(Vet, Test, Build)
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// pkgStats holds non-blank line counts for one package.
type pkgStats struct {
	path      string
	prod, tst int
}

// listFormat makes go list print "importpath|dir|gofiles|testgofiles" per package.
const listFormat = `{{.ImportPath}}|{{.Dir}}|{{join .GoFiles ","}}|{{join .TestGoFiles ","}}`

// Stats prints non-blank Go line counts per package, production and tests
// separately, using go list so build-tagged and vendored files are excluded.
func Stats() error {
	out, err := sh.Output("go", "list", "-f", listFormat, "./...")
	if err != nil {
		return fmt.Errorf("go list: %w", err)
	}
	pkgs, err := collectStats(out, countNonBlank)
	if err != nil {
		return err
	}
	var prod, tst int
	for _, p := range pkgs {
		fmt.Printf("%-50s %6d %6d\n", p.path, p.prod, p.tst)
		prod += p.prod
		tst += p.tst
	}
	fmt.Printf("%-50s %6d %6d\n", "total (production, tests)", prod, tst)
	return nil
}

// collectStats parses go list output in listFormat and counts each file with count.
func collectStats(listing string, count func(path string) (int, error)) ([]pkgStats, error) {
	var pkgs []pkgStats
	for _, line := range strings.Split(strings.TrimSpace(listing), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 4 {
			return nil, fmt.Errorf("unexpected go list line %q", line)
		}
		p := pkgStats{path: fields[0]}
		for i, files := range fields[2:] {
			for _, name := range strings.Split(files, ",") {
				if name == "" {
					continue
				}
				n, err := count(filepath.Join(fields[1], name))
				if err != nil {
					return nil, err
				}
				if i == 0 {
					p.prod += n
				} else {
					p.tst += n
				}
			}
		}
		pkgs = append(pkgs, p)
	}
	return pkgs, nil
}

func countNonBlank(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}
