// i18n-audit keeps JSON locale catalogs aligned with the master catalog
// and with the translation keys the application source actually uses.
//
// Usage:
//
//	i18n-audit <subcommand> [flags]
//
// Run "i18n-audit" with no arguments for a list of subcommands.
package main

import (
	"fmt"
	"os"
)

var subcommands = map[string]func([]string) error{
	"missing":    runMissing,
	"stale":      runStale,
	"empty":      runEmpty,
	"unused":     runUnused,
	"references": runReferences,
	"dynamic":    runDynamic,
	"hardcoded":  runHardcoded,
	"sync":       runSync,
	"verify":     runVerify,
	"check":      runCheck,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage()
		return
	}

	run, ok := subcommands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: i18n-audit <subcommand> [flags]

Subcommands:
  missing     Master keys absent from a target locale
  stale       Target locale keys absent from the master
  empty       Target locale keys with empty string values
  unused      Master keys never referenced in source code
  references  Where each master key is used (file:line)
  dynamic     Template-literal key patterns and the keys they cover
  hardcoded   Hardcoded strings in source that bypass translation (heuristic)
  sync        Reshape locale files to the master's key set (fill + prune)
  verify      Quality issues for target locales (placeholders, suspicious values)
  check       Full audit across all locales; writes the report artifact

Run "i18n-audit <subcommand> -h" for subcommand-specific flags.`)
}
