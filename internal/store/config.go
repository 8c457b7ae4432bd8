package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type GlobalConfig struct {
	CurrentWorkspace string `json:"currentWorkspace,omitempty"`

	// DefaultBackground is the canvas color used before anything is saved (#rrggbb).
	DefaultBackground string `json:"defaultBackground,omitempty"`

	// CatalogPath optionally points at a YAML palette catalog. Empty means the built-in kinds.
	CatalogPath string `json:"catalogPath,omitempty"`

	// TUI holds optional user preferences for the interactive editor.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id ("default", "contrast").
	Profile string `json:"profile,omitempty"`
	// Mouse enables mouse drag and click (default on).
	Mouse *bool `json:"mouse,omitempty"`
}

func (c *GlobalConfig) MouseEnabled() bool {
	if c == nil || c.TUI == nil || c.TUI.Mouse == nil {
		return true
	}
	return *c.TUI.Mouse
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.formbench).
	if v := strings.TrimSpace(os.Getenv("FORMBENCH_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".formbench"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", errors.New("workspace name must be a plain directory name")
	}
	return name, nil
}

func ListWorkspaces() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	out := []string{}
	ents, err := os.ReadDir(filepath.Join(dir, "workspaces"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (c *GlobalConfig) TUIProfile() string {
	if c == nil || c.TUI == nil {
		return ""
	}
	return strings.TrimSpace(c.TUI.Profile)
}
