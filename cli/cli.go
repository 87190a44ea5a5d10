package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/ilc/backend/js"
	"github.com/ardnew/ilc/cli/cmd"
	"github.com/ardnew/ilc/pkg"
)

// CLI is the top-level command-line interface for ilc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Target     string   `default:""     enum:",${targetEnum}" help:"Override the program's target version" placeholder:"${enum}" short:"t"`
	Out        string   `help:"Override the program's output file ('-' for stdout)" short:"o" type:"path"`
	Prelude    []string `help:"Prelude file or name to declare builtins from"        short:"I"`
	SearchPath []string `help:"Directory searched for prelude names"                 type:"path"`
	MaxDepth   int      `default:"0"    help:"Maximum block nesting depth (0 is unlimited)"`

	Init cmd.Init `cmd:"" help:"Initialize configuration file"`
	Fmt  cmd.Fmt  `cmd:"" help:"Format a program document"`
	Repl cmd.Repl `cmd:"" help:"Interactively lower expressions"`

	Compile cmd.Compile `cmd:"" default:"withargs" help:"Compile a program document"`
}

// Run executes the ilc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + configExt)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
		"targetEnum":         targetEnum(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before parsing so that parse errors are
	// reported in the requested format regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithOptions(ctx, cmd.Options{
		Target:     cli.Target,
		Out:        cli.Out,
		Prelude:    cli.Prelude,
		SearchPath: cmd.SearchPath(cli.SearchPath, configPath(preludeDir)),
		MaxDepth:   cli.MaxDepth,
		CacheDir:   cacheDir(),
	})

	// TimeLayout and Caller are only applied once parsing completes.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// targetEnum lists the accepted --target values.
func targetEnum() string {
	names := []string{}

	for v := range js.Versions() {
		names = append(names, v.String())
	}

	return strings.Join(append(names, "es2015"), ",")
}
