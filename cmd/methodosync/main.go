// Command methodosync records video annotations and derives codebooks.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simlab-siue/methodosync/internal/adapters/driven/config/file"
	"github.com/simlab-siue/methodosync/internal/adapters/driven/export/xlsx"
	"github.com/simlab-siue/methodosync/internal/adapters/driven/storage/memory"
	"github.com/simlab-siue/methodosync/internal/adapters/driven/storage/sqlite"
	"github.com/simlab-siue/methodosync/internal/adapters/driving/cli"
	"github.com/simlab-siue/methodosync/internal/codecs/frontmatter"
	"github.com/simlab-siue/methodosync/internal/connectors/filesystem"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
	"github.com/simlab-siue/methodosync/internal/core/services"
	"github.com/simlab-siue/methodosync/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters into the services for one invocation.
func bootstrap(opts cli.Options) (cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Get()

	var (
		store driven.SessionStore
		lazy  *sqlite.LazySessionStore
	)
	if opts.Ephemeral {
		logger.Debug("using in-memory session")
		store = memory.NewSessionStore()
	} else {
		lazy = sqlite.NewLazySessionStore(settings.DataDir)
		store = lazy
	}

	codec := frontmatter.New()
	transitions := services.NewTransitions(codec, nil)
	workspace := services.NewWorkspace(store)
	watcher := filesystem.NewWatcher(settings.WatchDebounce)

	templateDir := ""
	if opts.ConfigDir != "" {
		templateDir = filepath.Join(opts.ConfigDir, "templates")
	}
	templates, err := file.NewTemplateStore(templateDir, map[string]string{
		driven.TemplateSynthesis: frontmatter.SynthesisTemplate,
	})
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("opening templates: %w", err)
	}

	codebook := services.NewCodebookService(
		workspace,
		transitions,
		codec,
		filesystem.NewReader(settings.BatchLimit),
		xlsx.New(xlsx.WithSheetName(settings.SheetName)),
	)

	svc := cli.Services{
		Annotation: services.NewAnnotationService(workspace, transitions, codec),
		Codebook:   codebook,
		Settings:   settingsService,
		Watcher:    watcher,
		Templates:  templates,
	}

	release := func() error {
		errs := []error{watcher.Close()}
		if lazy != nil {
			errs = append(errs, lazy.Close())
		}
		return errors.Join(errs...)
	}
	return svc, release, nil
}
