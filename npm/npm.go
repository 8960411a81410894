package npm

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Runner executes an external command and returns its stdout. Production
// code uses ExecRunner; tests substitute a fake so no real tools run.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stdout := bytes.Buffer{}
	stderr := bytes.Buffer{}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), errors.Wrapf(err, "%s %s failed: %s",
			name, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Client wraps the npm command line.
type Client struct {
	runner Runner
}

func NewClient(runner Runner) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Client{runner: runner}
}

func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "npm", "--version")
	if err != nil {
		return "", errors.Wrap(err, "failed to query npm version")
	}
	return strings.TrimSpace(string(out)), nil
}

type globalListDoc struct {
	Dependencies map[string]globalDependencyDoc `json:"dependencies"`
}

type globalDependencyDoc struct {
	Version string `json:"version"`
}

// ListGlobal returns the globally installed packages and their versions.
// npm ls exits non-zero for unrelated problems in the tree, so a failed
// invocation that still produced parseable output is not treated as fatal.
func (c *Client) ListGlobal(ctx context.Context) (map[string]string, error) {
	out, err := c.runner.Run(ctx, "npm", "ls", "-g", "--depth=0", "--json")
	doc := globalListDoc{}
	if jsonErr := json.Unmarshal(out, &doc); jsonErr != nil {
		if err != nil {
			return nil, errors.Wrap(err, "failed to list global npm packages")
		}
		return nil, errors.Wrap(jsonErr, "failed to parse npm ls output")
	}
	versions := map[string]string{}
	for name, dep := range doc.Dependencies {
		versions[name] = dep.Version
	}
	return versions, nil
}

// InstallGlobal installs a package globally. spec may carry a version or
// range suffix, e.g. "generator-fabric@^2.0.0".
func (c *Client) InstallGlobal(ctx context.Context, spec string) error {
	if _, err := c.runner.Run(ctx, "npm", "install", "-g", spec); err != nil {
		return errors.Wrapf(err, "failed to install %s", spec)
	}
	return nil
}

func (c *Client) GlobalRoot(ctx context.Context) (string, error) {
	out, err := c.runner.Run(ctx, "npm", "root", "-g")
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve npm global root")
	}
	return strings.TrimSpace(string(out)), nil
}

// InstalledPackageJSON reads the package.json of a globally installed
// package into v.
func (c *Client) InstalledPackageJSON(ctx context.Context, pkg string, v interface{}) error {
	root, err := c.GlobalRoot(ctx)
	if err != nil {
		return err
	}
	path := filepath.Join(root, pkg, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read metadata for %s", pkg)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "failed to parse metadata for %s", pkg)
	}
	return nil
}
