// Package collect scans a source directory for dated blog posts and parses
// them into immutable post records, reporting per-file problems without
// aborting the batch.
package collect

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	bberrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Problem is one recoverable per-file issue collected during a scan. Problems
// are reported in the build summary; they never abort the batch.
type Problem struct {
	File    string
	Err     error
	Warning bool // true for advisory issues (the file was still collected)
}

func (p Problem) String() string {
	kind := "error"
	if p.Warning {
		kind = "warning"
	}
	return fmt.Sprintf("%s: %s: %v", kind, p.File, p.Err)
}

// Collector scans one source directory for post files.
type Collector struct {
	sourceDir string
}

// NewCollector creates a collector over the given source directory.
func NewCollector(sourceDir string) *Collector {
	return &Collector{sourceDir: sourceDir}
}

// Scan enumerates dated Markdown files in the source directory, parses each,
// and returns posts ordered by date descending (ties broken by slug
// ascending). Files that do not look like posts are ignored. Per-file failures
// are collected as Problems; only a missing or unreadable source directory is
// a fatal error.
func (c *Collector) Scan() ([]*post.Post, []Problem, error) {
	entries, err := os.ReadDir(c.sourceDir)
	if err != nil {
		return nil, nil, bberrors.Wrap(err, bberrors.CategoryFileSystem, bberrors.SeverityFatal,
			"read source directory").WithContext("path", c.sourceDir)
	}

	var (
		posts    []*post.Post
		problems []Problem
		bySlug   = make(map[string]string) // slug -> source filename that claimed it
		ignored  int
	)

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()

		if !looksDated(name) {
			ignored++
			slog.Debug("Ignoring non-post file", logfields.File(name))
			continue
		}

		p, prob := c.collectOne(name)
		if prob != nil {
			problems = append(problems, *prob)
			if !prob.Warning {
				continue
			}
		}
		if p == nil {
			continue
		}

		if prev, dup := bySlug[p.Slug]; dup {
			problems = append(problems, Problem{
				File: name,
				Err: fmt.Errorf("duplicate slug %q already claimed by %s", p.Slug, prev),
			})
			continue
		}
		bySlug[p.Slug] = name
		posts = append(posts, p)

		slog.Debug("Collected post", logfields.File(name), logfields.Slug(p.Slug))
	}

	// Deterministic ordering: slug ascending first, then a stable sort by date
	// descending keeps equal-date posts in slug order.
	sort.Slice(posts, func(i, j int) bool { return posts[i].Slug < posts[j].Slug })
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date.After(posts[j].Date) })

	slog.Info("Source scan complete",
		logfields.Source(c.sourceDir),
		logfields.Count(len(posts)),
		slog.Int("ignored", ignored),
		slog.Int("problems", len(problems)))

	return posts, problems, nil
}

// collectOne parses a single candidate file. The returned Problem may
// accompany a non-nil post when it is advisory only.
func (c *Collector) collectOne(name string) (*post.Post, *Problem) {
	date, slug, err := post.ParseFilename(name)
	if err != nil {
		return nil, &Problem{File: name, Err: err}
	}

	path := filepath.Join(c.sourceDir, name)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &Problem{File: name, Err: fmt.Errorf("read file: %w", err)}
	}

	meta, body, err := frontmatter.Parse(content)
	if err != nil {
		return nil, &Problem{File: name, Err: err}
	}

	p := &post.Post{
		Slug:       slug,
		Date:       date,
		Meta:       meta,
		Body:       body,
		SourcePath: path,
		SourceName: name,
	}

	if p.HasEmbeddedSeparator() {
		slog.Warn("Post contains an embedded article separator",
			logfields.File(name), logfields.Slug(slug))
		return p, &Problem{
			File:    name,
			Err:     fmt.Errorf("embedded %q separator: file appears to contain two concatenated articles", post.SectionSeparator),
			Warning: true,
		}
	}

	return p, nil
}

// looksDated is a cheap pre-filter: only names with the dated Markdown shape
// are treated as post candidates at all. The shape check is purely syntactic,
// so a candidate with an impossible calendar date still fails ParseFilename
// and surfaces as a Problem rather than being silently ignored.
func looksDated(name string) bool {
	return post.IsPostFilename(name)
}
