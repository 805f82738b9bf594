package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/willhansen/jvmsig"
	"github.com/willhansen/jvmsig/cmd/jvmsig/internal/check"
	"github.com/willhansen/jvmsig/cmd/jvmsig/internal/gen"
	"github.com/willhansen/jvmsig/cmd/jvmsig/internal/inspect"
	"github.com/willhansen/jvmsig/cmd/jvmsig/internal/session"
)

type CLI struct {
	Verbose bool `help:"Log resolver decisions at debug level." short:"v"`

	Version VersionCmd      `cmd:"" help:"Print version information."`
	Name    inspect.NameCmd `cmd:"" help:"Print the JVM internal names of declarations in a graph file."`
	Sig     inspect.SigCmd  `cmd:"" help:"Print descriptors and generic signatures of a graph file's named types."`
	Check   check.Cmd       `cmd:"" help:"Validate a graph file and report internal name collisions."`
	Gen     gen.Cmd         `cmd:"" help:"Write the signatures of Go package types to a listing."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(versionLine())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("jvmsig"),
		kong.Description("Compute JVM internal names and generic signatures for type graphs."),
		kong.UsageOnError(),
		kong.Vars{"default_language_version": jvmsig.DefaultLanguageVersion},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	err := kctx.Run(session.Logger(os.Stderr, cli.Verbose))
	kctx.FatalIfErrorf(err)
}
