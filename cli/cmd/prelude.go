package cmd

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/ilc/backend"
	"github.com/ardnew/ilc/log"
	"github.com/ardnew/ilc/program"
)

// PathEnv names the environment variable listing prelude directories.
const PathEnv = "ILC_PATH"

// preludeExt is tried when a prelude name does not exist as given.
var preludeExt = []string{"", ".yaml", ".yml"}

// SearchPath returns the directories searched for prelude names: dirs first,
// then the entries of $ILC_PATH, then fallback. Duplicates and entries that
// are not directories are dropped.
func SearchPath(dirs []string, fallback ...string) []string {
	sep := string(os.PathListSeparator)

	subject := strings.Join(
		slices.DeleteFunc(
			append([]string{os.Getenv(PathEnv)}, fallback...),
			func(s string) bool { return s == "" },
		),
		sep,
	)

	path := mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(sep),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	return slices.Compact(filepath.SplitList(path))
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// resolvePrelude returns the file named by name: name itself when it exists,
// otherwise the first match in path.
func resolvePrelude(name string, path []string) (string, bool) {
	candidates := make([]string, 0, len(preludeExt)*(len(path)+1))

	for _, ext := range preludeExt {
		candidates = append(candidates, name+ext)
	}

	if !filepath.IsAbs(name) {
		for _, dir := range path {
			for _, ext := range preludeExt {
				candidates = append(candidates, filepath.Join(dir, name+ext))
			}
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}

	return "", false
}

// loaded reports whether info names the same file as one of seen, so that
// symlinks and alternate spellings of a prelude are loaded once.
func loaded(seen []os.FileInfo, info os.FileInfo) bool {
	return slices.ContainsFunc(seen, func(s os.FileInfo) bool {
		return os.SameFile(s, info)
	})
}

// loadPreludes resolves and parses every prelude in opts, in order. A file
// reached through more than one name is read once.
func loadPreludes(ctx context.Context, opts Options) ([]backend.Decl, error) {
	var (
		decls []backend.Decl
		seen  []os.FileInfo
	)

	for _, name := range opts.Prelude {
		path, ok := resolvePrelude(name, opts.SearchPath)
		if !ok {
			return nil, ErrPrelude.
				Wrap(fs.ErrNotExist).
				With(slog.String("prelude", name), slog.Any("search", opts.SearchPath))
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, ErrPrelude.Wrap(err).With(slog.String("prelude", path))
		}

		if loaded(seen, info) {
			log.DebugContext(ctx, "prelude already loaded", slog.String("path", path))

			continue
		}

		seen = append(seen, info)

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ErrPrelude.Wrap(err).With(slog.String("prelude", path))
		}

		d, err := program.ParseBuiltins(path, data)
		if err != nil {
			return nil, err
		}

		log.DebugContext(ctx, "prelude loaded",
			slog.String("path", path),
			slog.Int("names", len(d)),
		)

		decls = append(decls, d...)
	}

	return decls, nil
}

// registry returns the name registry for prog seeded with the preludes in
// opts. A nil prog yields the preludes alone.
func registry(ctx context.Context, prog *program.Program, opts Options) (*backend.NameRegistry, error) {
	decls, err := loadPreludes(ctx, opts)
	if err != nil {
		return nil, err
	}

	if prog == nil {
		prog = &program.Program{}
	}

	return prog.Registry(decls...)
}
