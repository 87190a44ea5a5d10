// Package cli contains the command line interface for ilc.
//
// # Usage
//
// With no command, ilc compiles a program document to standard output or to
// the file named by the document's target:
//
//	ilc main.yaml
//	ilc --target=es5 -o out.js -I console main.yaml
//	ilc fmt --yaml main.yaml
//	ilc repl
//	ilc init
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/ilc/config.yaml). The init command writes
// this file from the current flag values. Nested YAML mappings are flattened
// into hyphenated flag names:
//
//	log:
//	  level: debug
//	target: es6
//	prelude: [console]
//
// A config.yaml.json file in the same directory is also read with kong's JSON
// loader.
//
// # Preludes
//
// Prelude names given with -I are searched for in the directories given with
// --search-path, then $ILC_PATH, then the prelude subdirectory of the
// configuration directory. The extensions ".yaml" and ".yml" are tried.
//
// # Logging Options
//
//   - --log-level: minimum level (trace, debug, info, warn, error)
//   - --log-format: output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: include caller information
//   - --[no-]log-pretty: colorize output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o ilc .
//
//   - --pprof-mode: profile kind (allocs, block, cpu, heap, trace, ...)
//   - --pprof-dir: output directory (default: <cache>/ilc/pprof)
package cli
