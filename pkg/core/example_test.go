package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/vulnsweep/vulnsweep/pkg/core"
)

// ExampleScan demonstrates a basic embedded scan over a directory.
func ExampleScan() {
	cfg := core.Config{
		Root:            ".",
		Threads:         4,
		IncludeGlobs:    "*.go",
		MaxBytes:        1024 * 1024,
		DefaultExcludes: true,
	}

	res, err := core.Scan(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return
	}

	if res.TotalVulnerabilities == 0 {
		fmt.Println("No vulnerabilities found.")
	} else {
		fmt.Printf("Found %d vulnerabilities in %d files.\n", res.TotalVulnerabilities, res.FilesScanned)
		_ = core.MarshalFindings(os.Stdout, res.Findings)
	}
}

// ExampleCategories lists the rule categories the built-in set evaluates.
func ExampleCategories() {
	cats, err := core.Categories(core.Config{})
	if err != nil {
		panic(err)
	}
	for _, c := range cats {
		fmt.Println(c)
	}
}
