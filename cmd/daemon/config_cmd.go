// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/ManuGH/spacegate/internal/config"
)

func runConfigCLI(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage(stderr)
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:], stdout, stderr)
	case "print":
		return runConfigPrint(args[1:], stdout, stderr)
	case "init":
		return runConfigInit(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage(stderr)
		return 2
	}
}

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  spacegate config validate [--file|-f config.yaml]")
	fmt.Fprintln(w, "  spacegate config print [--file|-f config.yaml] [--format=yaml|json]")
	fmt.Fprintln(w, "  spacegate config init --file|-f config.yaml [--force]")
}

func fileFlags(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet("spacegate config "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	return fs, &file
}

func runConfigValidate(args []string, stdout, stderr io.Writer) int {
	fs, file := fileFlags("validate", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := resolveConfigPath(*file)
	if _, err := config.NewLoader(path).Load(); err != nil {
		printConfigError(stderr, path, err)
		return 1
	}

	if path == "" {
		path = "environment"
	}
	fmt.Fprintf(stdout, "%s is valid\n", path)
	return 0
}

func runConfigPrint(args []string, stdout, stderr io.Writer) int {
	fs, file := fileFlags("print", stderr)
	var format string
	fs.StringVar(&format, "format", "yaml", "output format: yaml or json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := resolveConfigPath(*file)
	cfg, err := config.NewLoader(path).Load()
	if err != nil {
		printConfigError(stderr, path, err)
		return 1
	}
	redactConfigSecrets(&cfg)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
			return 1
		}
		_, _ = stdout.Write(data)
		return 0
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "Unsupported format: %s (use yaml or json)\n", format)
		return 2
	}
}

func runConfigInit(args []string, stdout, stderr io.Writer) int {
	fs, file := fileFlags("init", stderr)
	var force bool
	fs.BoolVar(&force, "force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := strings.TrimSpace(*file)
	if path == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		return 2
	}
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(stderr, "Error: %s already exists (use --force to overwrite)\n", path)
		return 1
	}

	if err := config.NewManager(path).Save(config.Starter()); err != nil {
		fmt.Fprintf(stderr, "Failed to write %s: %v\n", path, err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote starter configuration to %s\n", path)
	return 0
}

func printConfigError(w io.Writer, path string, err error) {
	if path == "" {
		path = "environment"
	}
	fmt.Fprintf(w, "Configuration error in %s:\n", path)

	var cerr *config.ConfigurationError
	if errors.As(err, &cerr) {
		if fields := cerr.Fields(); len(fields) > 0 {
			for _, f := range fields {
				fmt.Fprintf(w, "  %s\n", f.Error())
			}
			return
		}
	}
	fmt.Fprintf(w, "  %v\n", err)
}

// redactConfigSecrets drops credentials embedded in the RPC URL.
func redactConfigSecrets(cfg *config.SystemConfig) {
	cfg.Chain.RPCURL = maskURL(cfg.Chain.RPCURL)
}

// maskURL removes user info and query from a URL string for safe output.
func maskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url-redacted"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}
