package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/collect"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// ListCmd implements the 'list' command: run collection only and print what
// would be published.
type ListCmd struct {
	Src string `help:"Posts source directory (overrides config)"`
}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if l.Src != "" {
		cfg.Build.Source = l.Src
	}

	posts, problems, err := collect.NewCollector(cfg.Build.Source).Scan()
	if err != nil {
		return err
	}

	for _, p := range posts {
		fmt.Printf("%s  %-30s  %s\n", p.Date.Format("2006-01-02"), p.Slug, p.Title())
	}
	fmt.Printf("%d posts", len(posts))
	if len(problems) > 0 {
		fmt.Printf(", %d problems", len(problems))
	}
	fmt.Println()

	for _, prob := range problems {
		slog.Warn("Skipped file", slog.String("file", prob.File), slog.String("reason", prob.String()))
	}
	return nil
}
