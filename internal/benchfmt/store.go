package benchfmt

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

// LoadSummary reads a JSON summary from path.
func LoadSummary(fs afero.Fs, path string) (Summary, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Summary{}, errors.Wrap(err, "read summary")
	}

	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return Summary{}, errors.Wrapf(err, "decode summary %s", path)
	}
	return s, nil
}

// SaveSummary writes s to path as indented JSON, creating parent directories.
func SaveSummary(fs afero.Fs, path string, s Summary) error {
	return writeJSON(fs, path, s)
}

// SaveComparison writes c to path as indented JSON, creating parent directories.
func SaveComparison(fs afero.Fs, path string, c Comparison) error {
	return writeJSON(fs, path, c)
}

func writeJSON(fs afero.Fs, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode json")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "create directory")
		}
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrap(err, "write json")
	}
	return nil
}

// AppendResult adds r to the summary stored at path. A missing or unreadable
// file starts a fresh summary stamped with the current time, Go version and
// the git commit and branch found under repoRoot.
func AppendResult(fs afero.Fs, path, repoRoot string, r Result) error {
	s, err := LoadSummary(fs, path)
	if err != nil {
		commit, branch := GitInfo(fs, repoRoot)
		s = Summary{
			Timestamp: time.Now().Format(time.RFC3339),
			CommitID:  commit,
			Branch:    branch,
			GoVersion: runtime.Version(),
		}
	}
	s.Results = append(s.Results, r)
	return SaveSummary(fs, path, s)
}

// GitInfo returns the short commit ID and branch checked out in repoRoot,
// falling back to "local" and "dev" when they cannot be read.
func GitInfo(fs afero.Fs, repoRoot string) (commit, branch string) {
	commit, branch = "local", "dev"

	head, err := afero.ReadFile(fs, filepath.Join(repoRoot, ".git", "HEAD"))
	if err != nil {
		return commit, branch
	}

	ref := strings.TrimSpace(string(head))
	if !strings.HasPrefix(ref, "ref: ") {
		// Detached HEAD holds the commit itself.
		return truncate(ref, 8), branch
	}

	ref = strings.TrimPrefix(ref, "ref: ")
	if strings.HasPrefix(ref, "refs/heads/") {
		branch = strings.TrimPrefix(ref, "refs/heads/")
	}
	if data, err := afero.ReadFile(fs, filepath.Join(repoRoot, ".git", ref)); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			commit = truncate(id, 8)
		}
	}
	return commit, branch
}

// LoadConfig reads a comparison config. The file may contain comments and
// trailing commas; fields it omits keep their DefaultConfig values. An empty
// path yields DefaultConfig.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	if cfg.SignificanceThreshold < 0 {
		return cfg, errors.Errorf("significance threshold %v is negative", cfg.SignificanceThreshold)
	}
	return cfg, nil
}
