package cmd

import (
	"github.com/mvmtool/mvm/src/internal/config"
	"github.com/mvmtool/mvm/src/internal/invoker"
	"github.com/mvmtool/mvm/src/internal/maven"
	"github.com/mvmtool/mvm/src/internal/mirror"
	"github.com/mvmtool/mvm/src/internal/ui"
	"github.com/mvmtool/mvm/src/internal/versions"
)

// prompter asks for the install root on first use; replaced in tests
var prompter ui.Prompter = ui.FormPrompter{}

// environment is the configuration and installer a command works with
type environment struct {
	settings  *config.Settings
	installer *maven.Installer
}

// loadEnvironment reads the config file, prompting for the install root on
// first use, and builds an installer over it.
func loadEnvironment() (*environment, error) {
	store := config.DefaultStore()
	ui.Debug("Using config file %s", store.Path())

	settings, err := store.LoadWithInstallRoot(prompter)
	if err != nil {
		if config.IsPathNotFound(err) {
			ui.Info("%s was cleared, the next run asks for the install directory again", config.KeyMavenPath)
		}
		return nil, err
	}

	installer := maven.NewInstaller(maven.Options{
		Root:     settings.MavenPath,
		Scanner:  versions.NewScanner(invoker.New()),
		Resolver: mirror.NewResolver(mirrorSources(settings.Mirrors)),
		Defaults: store,
	})

	return &environment{settings: settings, installer: installer}, nil
}

// mirrorSources converts configured mirrors; nil means the built-in list
func mirrorSources(mirrors []config.MirrorSetting) []mirror.Source {
	if len(mirrors) == 0 {
		return nil
	}
	sources := make([]mirror.Source, 0, len(mirrors))
	for _, m := range mirrors {
		if m.URL == "" {
			ui.Debug("Ignoring mirror without url")
			continue
		}
		sources = append(sources, mirror.Source{BaseURL: m.URL, VersionSubpath: m.Versioned})
	}
	return sources
}
