// Package check parses batches of BML files concurrently.
package check

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bml-lang/bml/internal/config"
	"github.com/bml-lang/bml/internal/logger"
	"github.com/bml-lang/bml/internal/syntax"
)

// Result is the outcome of parsing one file.
type Result struct {
	Path    string
	Src     []byte
	Program *syntax.Program // nil if Err is set
	Err     error           // read, lexical or syntax error
}

// Report collects the results of one check run, sorted by path.
type Report struct {
	Results  []Result
	Duration time.Duration
}

// Failed returns the number of files that did not parse.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// OK reports whether every file parsed.
func (r *Report) OK() bool {
	return r.Failed() == 0
}

// Checker parses files with a bounded number of workers.
type Checker struct {
	cfg *config.Config
	log *slog.Logger
}

// New returns a Checker using cfg for the job limit and the source file
// extensions. A nil cfg means the defaults.
func New(cfg *config.Config, log *slog.Logger) *Checker {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.L()
	}
	return &Checker{cfg: cfg, log: log.With("component", "check")}
}

// Matches reports whether path has one of the configured source file
// extensions.
func (c *Checker) Matches(path string) bool {
	return c.cfg.HasExtension(path)
}

// Collect expands paths into the list of files to check. Files named
// explicitly are always included; directories are walked for files with
// a configured extension. The result is sorted and free of duplicates.
func (c *Checker) Collect(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("collecting %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if c.Matches(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Run collects and parses every file under paths. Parse failures are
// reported in the Report; the returned error is only set when files
// could not be collected or ctx was cancelled.
func (c *Checker) Run(ctx context.Context, paths []string) (*Report, error) {
	files, err := c.Collect(paths)
	if err != nil {
		return nil, err
	}
	return c.Files(ctx, files)
}

// Files parses the given files concurrently.
func (c *Checker) Files(ctx context.Context, files []string) (*Report, error) {
	start := time.Now()
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Jobs)

	for i, path := range files {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.parseFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := &Report{Results: results, Duration: time.Since(start)}
	logger.LogCheckComplete(c.log, len(files), rep.Failed(), rep.Duration.String())
	return rep, nil
}

func (c *Checker) parseFile(path string) Result {
	res := Result{Path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", path, err)
		c.log.Warn("cannot read file", "file", path, "error", err)
		return res
	}
	res.Src = src

	res.Program, res.Err = syntax.NewParser(path, src, nil).Parse()
	if res.Err != nil {
		logger.LogFileFailed(c.log, path, res.Err)
	} else {
		logger.LogFileParsed(c.log, path, len(res.Program.Stmts))
	}
	return res
}
