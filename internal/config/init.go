package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# BlogBuilder configuration
site:
  title: "My Blog"
  description: "Notes on things I build"
  base_url: ""
  author: ""

build:
  source: ./posts
  output: ./site
  # strict: true         # fail posts that declare an unknown layout
  # incremental: true    # skip re-rendering unchanged posts
  # repo: https://example.com/me/blog.git
  # branch: main
  # repo_posts_dir: _posts

preview:
  addr: ":8080"
  metrics: false

watch:
  debounce_seconds: 2
  # rebuild_interval_minutes: 30
`

// Init writes a starter configuration file. Existing files are preserved
// unless force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write configuration file %s: %w", configPath, err)
	}
	return nil
}
