// Package template loads presentation templates from the bot's template directory.
package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Template names shipped with the bot.
const (
	Help         = "helps.html"
	Roster       = "roster.html"
	MatchHistory = "match_history.html"
	Profile      = "profile.html"
)

// ErrNotFound is returned when the named template does not exist.
var ErrNotFound = errors.New("template not found")

// Loader reads templates from a fixed directory.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = "templates"
	}
	return &Loader{dir: dir}
}

// Dir returns the directory templates are read from.
func (l *Loader) Dir() string {
	return l.dir
}

// Load returns the template text for name.
func (l *Loader) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(l.dir, filepath.Base(name))
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	return string(data), nil
}
