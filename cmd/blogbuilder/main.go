package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/cmd/blogbuilder/commands"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("blogbuilder"),
		kong.Description("Build a static blog from dated markdown posts."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	g := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(g, cli); err != nil {
		slog.Error("Command failed", logfields.Error(err))
		os.Exit(1)
	}
}
