package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/kfsoftware/hlf-gateway-manager/config"
	"github.com/kfsoftware/hlf-gateway-manager/log"
	"github.com/kfsoftware/hlf-gateway-manager/npm"
	"github.com/kfsoftware/hlf-gateway-manager/prompt"
	"github.com/pkg/errors"
)

const yeomanPackage = "yo"

// Placeholder metadata passed to the generator. The generated project is
// expected to be edited by the user afterwards.
const (
	projectAuthor  = "author"
	projectLicense = "Apache-2.0"
	projectVersion = "0.0.1"
)

// Dependencies reports which scaffolding tools are missing from the global
// npm installation. Derived fresh on every check.
type Dependencies struct {
	MissingYeoman    bool
	MissingGenerator bool
}

type Scaffolder struct {
	npm      *npm.Client
	runner   npm.Runner
	prompter prompt.Prompter
	cfg      config.GeneratorConfig
}

func New(client *npm.Client, runner npm.Runner, prompter prompt.Prompter, cfg config.GeneratorConfig) *Scaffolder {
	return &Scaffolder{
		npm:      client,
		runner:   runner,
		prompter: prompter,
		cfg:      cfg,
	}
}

// CheckDependencies inspects the global npm installation and reports which
// of the two scaffolding tools are missing, along with every installed
// package version.
func (s *Scaffolder) CheckDependencies(ctx context.Context) (*Dependencies, map[string]string, error) {
	installed, err := s.npm.ListGlobal(ctx)
	if err != nil {
		return nil, nil, err
	}
	deps := &Dependencies{}
	if _, ok := installed[yeomanPackage]; !ok {
		deps.MissingYeoman = true
	}
	if _, ok := installed[s.cfg.Package]; !ok {
		deps.MissingGenerator = true
	}
	return deps, installed, nil
}

// EnsureDependencies verifies npm is available, installs the scaffolding
// tools that are missing and reinstalls the generator once when its
// installed version falls outside the required range.
func (s *Scaffolder) EnsureDependencies(ctx context.Context) error {
	npmVersion, err := s.npm.Version(ctx)
	if err != nil {
		return errors.Wrap(err, "npm is required to scaffold contract projects")
	}
	log.Debugf("using npm %s", npmVersion)
	if runtime.GOOS == "darwin" {
		if _, err := s.runner.Run(ctx, "xcode-select", "-p"); err != nil {
			return errors.Wrap(err, "Xcode command line tools are required to scaffold contract projects")
		}
	}
	deps, installed, err := s.CheckDependencies(ctx)
	if err != nil {
		return err
	}
	if deps.MissingYeoman {
		log.Infof("installing %s", yeomanPackage)
		if err := s.npm.InstallGlobal(ctx, yeomanPackage); err != nil {
			return err
		}
	}
	if deps.MissingGenerator {
		log.Infof("installing %s@%s", s.cfg.Package, s.cfg.RequiredVersion)
		return s.npm.InstallGlobal(ctx, s.cfg.Package+"@"+s.cfg.RequiredVersion)
	}
	installedVersion := installed[s.cfg.Package]
	ok, err := satisfies(installedVersion, s.cfg.RequiredVersion)
	if err != nil {
		return err
	}
	if !ok {
		log.Infof("installed %s %s does not satisfy %s, reinstalling",
			s.cfg.Package, installedVersion, s.cfg.RequiredVersion)
		return s.npm.InstallGlobal(ctx, s.cfg.Package+"@"+s.cfg.RequiredVersion)
	}
	return nil
}

func satisfies(version string, versionRange string) (bool, error) {
	c, err := semver.NewConstraint(versionRange)
	if err != nil {
		return false, errors.Wrapf(err, "invalid version range %s", versionRange)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, errors.Wrapf(err, "invalid version %s", version)
	}
	return c.Check(v), nil
}

type generatorMetadata struct {
	Contributes struct {
		Languages []string `json:"languages"`
	} `json:"contributes"`
}

// Post-generation choices.
const (
	afterShowInstructions = "Print getting started instructions"
	afterNothing          = "Nothing"
)

// CreateProject prompts for a contract language and a destination folder,
// then runs the generator. Dismissed prompts cancel the workflow silently.
func (s *Scaffolder) CreateProject(ctx context.Context) error {
	meta := generatorMetadata{}
	if err := s.npm.InstalledPackageJSON(ctx, s.cfg.Package, &meta); err != nil {
		return err
	}
	languages := meta.Contributes.Languages
	if len(languages) == 0 {
		return errors.Errorf("%s does not declare any contract languages", s.cfg.Package)
	}

	language, err := s.prompter.Select("Choose a smart contract language", languages)
	if err != nil {
		return err
	}
	if language == "" {
		return nil
	}
	folder, err := s.prompter.File("Enter a directory for the new project")
	if err != nil {
		return err
	}
	if folder == "" {
		return nil
	}
	after, err := s.prompter.Select(
		"What would you like to do once the project is created?",
		[]string{afterShowInstructions, afterNothing},
	)
	if err != nil {
		return err
	}
	if after == "" {
		return nil
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return errors.Wrapf(err, "failed to create project directory %s", folder)
	}
	projectName := filepath.Base(filepath.Clean(folder))
	args := []string{
		yeomanNamespace(s.cfg.Package) + ":contract",
		"--destination=" + folder,
		"--language=" + language,
		"--name=" + projectName,
		"--author=" + projectAuthor,
		"--license=" + projectLicense,
		"--version=" + projectVersion,
	}
	if _, err := s.runner.Run(ctx, "yo", args...); err != nil {
		return errors.Wrapf(err, "failed to generate %s project in %s", language, folder)
	}
	log.Infof("created %s contract project %s in %s", language, projectName, folder)
	if after == afterShowInstructions {
		log.Infof("open %s in your editor to start working on the contract", folder)
	}
	return nil
}

// yeomanNamespace maps an npm generator package name to the namespace yo
// invokes it by, e.g. generator-fabric -> fabric.
func yeomanNamespace(pkg string) string {
	return strings.TrimPrefix(pkg, "generator-")
}
