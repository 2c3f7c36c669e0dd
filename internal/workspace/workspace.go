// Package workspace manages scratch directories for builds, supporting both
// ephemeral (timestamped) and persistent (fixed-path) modes.
//
// Ephemeral mode creates timestamped directories (e.g., blogbuilder-20230509-122336)
// suitable for one-shot builds, cleaning up completely after use. Persistent
// mode uses a fixed directory that survives across builds, enabling
// incremental git updates.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Manager handles workspace operations (both temporary and persistent)
type Manager struct {
	baseDir    string
	dir        string
	persistent bool
}

// NewManager creates a workspace manager with ephemeral timestamped directories.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// NewPersistentManager creates a workspace manager over a fixed directory that
// is not removed on Cleanup().
func NewPersistentManager(baseDir, subdirName string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if subdirName == "" {
		subdirName = "working"
	}
	return &Manager{
		baseDir:    baseDir,
		dir:        filepath.Join(baseDir, subdirName),
		persistent: true,
	}
}

// Create creates the workspace directory. Ephemeral managers get a fresh
// timestamped directory per call.
func (m *Manager) Create() error {
	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o755); err != nil {
			return fmt.Errorf("create persistent workspace %s: %w", m.dir, err)
		}
		slog.Debug("Using persistent workspace", logfields.Path(m.dir))
		return nil
	}

	name := fmt.Sprintf("blogbuilder-%s", time.Now().Format("20060102-150405"))
	dir, err := os.MkdirTemp(m.baseDir, name+"-")
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(m.dir))
	return nil
}

// GetPath returns the workspace directory path.
func (m *Manager) GetPath() string { return m.dir }

// Cleanup removes an ephemeral workspace. Persistent workspaces are kept.
func (m *Manager) Cleanup() error {
	if m.persistent || m.dir == "" {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("cleanup workspace %s: %w", m.dir, err)
	}
	slog.Debug("Removed workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
