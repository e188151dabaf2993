package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extsrc-labs/extsrc/internal/config"
	"github.com/extsrc-labs/extsrc/internal/loader"
	"github.com/extsrc-labs/extsrc/internal/logging"
	"github.com/extsrc-labs/extsrc/internal/registry"
	"github.com/extsrc-labs/extsrc/internal/searchpath"
	"github.com/extsrc-labs/extsrc/internal/source"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// session bundles the registry with the collaborators the CLI hands it.
type session struct {
	reg    *registry.Registry
	path   *searchpath.List
	loader *loader.Loader
	log    zerolog.Logger
}

// openSession builds a registry over the configured sources file.
func openSession(cmd *cobra.Command) (*session, error) {
	log, err := logging.New(cmd.ErrOrStderr(), config.LogLevel())
	if err != nil {
		return nil, err
	}

	sp := searchpath.Parse(config.SearchPathSeed())
	ld := loader.New(log)
	storage := config.StoragePath()

	reg, err := registry.New(storage, sp, ld, registry.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("opening sources %s: %w", storage, err)
	}
	log.Debug().Str("storage", storage).Int("sources", reg.Len()).Msg("sources opened")

	return &session{reg: reg, path: sp, loader: ld, log: log}, nil
}

// report prints one line per committed registry change to w.
func (s *session) report(w io.Writer) {
	line := func(e registry.Event) {
		switch e.Kind {
		case registry.EventReordered:
			fmt.Fprintln(w, "reordered sources")
		default:
			state := "disabled"
			if e.Source.Enabled() {
				state = "enabled"
			}
			fmt.Fprintf(w, "%-9s [%d] %s (%s)\n", e.Kind, e.Source.ID(), e.Source.Path(), state)
		}
	}
	for _, k := range []registry.EventKind{
		registry.EventAdded, registry.EventRemoved, registry.EventChanged, registry.EventReordered,
	} {
		s.reg.On(k, line)
	}
}

// save writes the registry back to its storage location.
func (s *session) save() error {
	if err := s.reg.Save(); err != nil {
		return fmt.Errorf("saving sources: %w", err)
	}
	return nil
}

// resolve finds the source an argument refers to: a live id first, then a
// path as given, then the path made absolute.
func (s *session) resolve(arg string) (*source.Source, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if src := s.reg.FindByID(id); src != nil {
			return src, nil
		}
	}
	if src := s.reg.FindByPath(arg); src != nil {
		return src, nil
	}
	if abs, err := normalizePath(arg); err == nil {
		if src := s.reg.FindByPath(abs); src != nil {
			return src, nil
		}
	}
	return nil, fmt.Errorf("no source matches %q: %w", arg, registry.ErrNotFound)
}

// normalizePath expands a leading ~/ and makes p absolute and clean.
func normalizePath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", p, err)
	}
	return abs, nil
}
