// Package share hands document files to something outside the vault: an
// export directory or a desktop "open with" command.
package share

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/docvault/internal/filex"
)

// Request describes one file to share.
type Request struct {
	Path  string // local path of the file
	Name  string // name the recipient should see
	MIME  string
	Title string
}

// Sharer delivers a file to a share target.
type Sharer interface {
	// Available reports whether the target can currently receive files.
	Available(ctx context.Context) bool
	Share(ctx context.Context, req Request) error
}

// ErrNoTarget is returned by Share when no target is configured.
var ErrNoTarget = errors.New("no share target configured")

// DirSharer copies shared files into a directory.
type DirSharer struct {
	dir string
}

func NewDirSharer(dir string) *DirSharer {
	return &DirSharer{dir: dir}
}

func (s *DirSharer) Available(ctx context.Context) bool {
	return s.dir != ""
}

func (s *DirSharer) Share(ctx context.Context, req Request) error {
	if s.dir == "" {
		return ErrNoTarget
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return err
	}

	name := filepath.Base(req.Name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = filepath.Base(req.Path)
	}
	if _, err := filex.CopyFile(req.Path, filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	return nil
}

// CommandSharer runs an external program with the file path as its last
// argument, e.g. "xdg-open" or "open -R".
type CommandSharer struct {
	name string
	args []string
}

func NewCommandSharer(command string) *CommandSharer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return &CommandSharer{}
	}
	return &CommandSharer{name: fields[0], args: fields[1:]}
}

func (s *CommandSharer) Available(ctx context.Context) bool {
	if s.name == "" {
		return false
	}
	_, err := exec.LookPath(s.name)
	return err == nil
}

func (s *CommandSharer) Share(ctx context.Context, req Request) error {
	if s.name == "" {
		return ErrNoTarget
	}
	args := append(append([]string{}, s.args...), req.Path)
	cmd := exec.CommandContext(ctx, s.name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// First delegates to the first available sharer.
type First []Sharer

func (f First) Available(ctx context.Context) bool {
	return f.pick(ctx) != nil
}

func (f First) Share(ctx context.Context, req Request) error {
	s := f.pick(ctx)
	if s == nil {
		return ErrNoTarget
	}
	return s.Share(ctx, req)
}

func (f First) pick(ctx context.Context) Sharer {
	for _, s := range f {
		if s != nil && s.Available(ctx) {
			return s
		}
	}
	return nil
}

// New builds the sharer for the configured command and export directory.
// The command wins when both are usable.
func New(command, dir string) Sharer {
	return First{NewCommandSharer(command), NewDirSharer(dir)}
}

var (
	_ Sharer = (*DirSharer)(nil)
	_ Sharer = (*CommandSharer)(nil)
	_ Sharer = First(nil)
)
