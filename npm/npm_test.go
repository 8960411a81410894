package npm

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	call := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, call)
	return []byte(r.outputs[call]), r.errs[call]
}

func TestVersion(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"npm --version": "10.2.4\n"}}
	client := NewClient(runner)
	version, err := client.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10.2.4", version)
}

func TestListGlobal(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"npm ls -g --depth=0 --json": `{"dependencies":{"yo":{"version":"4.3.1"},"generator-fabric":{"version":"1.2.0"}}}`,
	}}
	client := NewClient(runner)
	installed, err := client.ListGlobal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"yo": "4.3.1", "generator-fabric": "1.2.0"}, installed)
}

func TestListGlobalToleratesNonZeroExitWithOutput(t *testing.T) {
	// npm ls exits non-zero for unrelated tree problems but still emits json
	runner := &fakeRunner{
		outputs: map[string]string{
			"npm ls -g --depth=0 --json": `{"dependencies":{"yo":{"version":"4.3.1"}}}`,
		},
		errs: map[string]error{
			"npm ls -g --depth=0 --json": errors.New("exit status 1"),
		},
	}
	client := NewClient(runner)
	installed, err := client.ListGlobal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.3.1", installed["yo"])
}

func TestListGlobalFailure(t *testing.T) {
	runner := &fakeRunner{
		errs: map[string]error{
			"npm ls -g --depth=0 --json": errors.New("npm not found"),
		},
	}
	client := NewClient(runner)
	_, err := client.ListGlobal(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "npm not found")
}

func TestListGlobalUnparseableOutput(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"npm ls -g --depth=0 --json": "not json at all",
	}}
	client := NewClient(runner)
	_, err := client.ListGlobal(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse npm ls output")
}

func TestInstallGlobal(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{}}
	client := NewClient(runner)
	err := client.InstallGlobal(context.Background(), "generator-fabric@^1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"npm install -g generator-fabric@^1.0.0"}, runner.calls)
}

func TestInstalledPackageJSON(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "generator-fabric")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	pkgJSON := `{"name":"generator-fabric","contributes":{"languages":["typescript","go"]}}`
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(pkgJSON), 0644))

	runner := &fakeRunner{outputs: map[string]string{"npm root -g": root + "\n"}}
	client := NewClient(runner)

	meta := struct {
		Contributes struct {
			Languages []string `json:"languages"`
		} `json:"contributes"`
	}{}
	err := client.InstalledPackageJSON(context.Background(), "generator-fabric", &meta)
	require.NoError(t, err)
	assert.Equal(t, []string{"typescript", "go"}, meta.Contributes.Languages)
}

func TestInstalledPackageJSONMissingPackage(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"npm root -g": t.TempDir()}}
	client := NewClient(runner)
	var meta struct{}
	err := client.InstalledPackageJSON(context.Background(), "generator-fabric", &meta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator-fabric")
}
