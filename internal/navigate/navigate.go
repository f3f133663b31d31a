// Package navigate runs one cdh invocation against the history.
//
// A navigation loads the history, records the current directory, resolves
// the requested reference, records the target and persists the history if
// anything changed. The current directory is recorded before resolving, so
// relative references such as "-" count back from it.
//
// Persistence replaces the history file atomically. Two shells navigating
// at the same moment are not merged: whichever writes last wins.
package navigate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/raphi011/cdh/internal/abspath"
	"github.com/raphi011/cdh/internal/history"
	"github.com/raphi011/cdh/internal/identity"
	"github.com/raphi011/cdh/internal/log"
	"github.com/raphi011/cdh/internal/match"
	"github.com/raphi011/cdh/internal/output"
)

// ErrUnavailable is returned when the chosen directory cannot be entered.
var ErrUnavailable = errors.New("Directory unavailable")

// ErrUnrecordable is returned when the chosen directory cannot be stored in
// the history, for instance because its path contains a newline.
var ErrUnrecordable = errors.New("Directory cannot be recorded")

// ErrCancelled is returned by a Chooser when the user backs out.
var ErrCancelled = errors.New("cancelled")

// Chooser picks a directory from the history, most recent entry last.
type Chooser func(entries []history.Entry) (path string, err error)

// Options configures a Navigator. Zero-valued hooks use the process
// environment.
type Options struct {
	HistoryFile string
	MaxHistory  int

	Getwd    func() (string, error)
	HomeDir  func() (string, error)
	Resolver *identity.Resolver
	Abs      *abspath.Canonicalizer
}

// Navigator orchestrates a single load, mutate, persist cycle.
type Navigator struct {
	opts Options
}

// New creates a Navigator.
func New(opts Options) *Navigator {
	if opts.Getwd == nil {
		opts.Getwd = os.Getwd
	}
	if opts.HomeDir == nil {
		opts.HomeDir = os.UserHomeDir
	}
	return &Navigator{opts: opts}
}

// Result describes a completed navigation.
type Result struct {
	// Entry is the history entry of the target after recording it.
	Entry history.Entry
	// Others are pattern matches that were not chosen.
	Others []history.Entry
	// Saved reports whether the history file was rewritten.
	Saved bool
}

// session is the state of one invocation.
type session struct {
	log         *log.Logger
	store       *history.Store
	resolver    *identity.Resolver
	abs         *abspath.Canonicalizer
	cwdIdentity string
}

func (n *Navigator) begin(ctx context.Context) (*session, error) {
	l := log.FromContext(ctx)

	s := &session{
		log:      l,
		resolver: n.opts.Resolver,
		abs:      n.opts.Abs,
	}
	if s.resolver == nil {
		s.resolver = identity.NewResolver(l)
	}
	if s.abs == nil {
		s.abs = abspath.New()
	}

	s.store = history.New(s.resolver, l, n.opts.MaxHistory)
	if err := s.store.Load(n.opts.HistoryFile); err != nil {
		return nil, err
	}
	l.Debug("loaded history", "file", n.opts.HistoryFile, "entries", s.store.Len(), "max", s.store.Max())

	cwd, err := n.opts.Getwd()
	if err != nil {
		l.Warnf("cannot determine current directory: %v", err)
		return s, nil
	}
	if canonical, err := s.abs.Abs(cwd); err == nil {
		cwd = canonical
	}
	if token, ok := s.resolver.Resolve(cwd); ok {
		s.cwdIdentity = token
		s.store.AddWithIdentity(cwd, token)
	}
	l.Debug("recorded current directory", "path", cwd, "identity", s.cwdIdentity)
	return s, nil
}

// Navigate resolves ref and records the visit. An empty ref means the
// home directory. On success the directive is written to the context's
// output printer.
func (n *Navigator) Navigate(ctx context.Context, ref string) (Result, error) {
	s, err := n.begin(ctx)
	if err != nil {
		return Result{}, err
	}

	if ref == "" {
		home, err := n.opts.HomeDir()
		if err != nil {
			return Result{}, fmt.Errorf("locate home directory: %w", err)
		}
		ref = home
	}

	m := match.New(s.store.Entries(), s.cwdIdentity, s.abs)
	res, err := m.Resolve(ref)
	if err != nil {
		return Result{}, err
	}
	s.log.Debug("resolved reference", "ref", ref, "path", res.Path)

	return n.finish(ctx, s, res.Path, res.Others)
}

// Choose lets choose pick the target from the history.
func (n *Navigator) Choose(ctx context.Context, choose Chooser) (Result, error) {
	s, err := n.begin(ctx)
	if err != nil {
		return Result{}, err
	}
	if s.store.Len() == 0 {
		return Result{}, errors.New("No directories in history")
	}

	path, err := choose(s.store.Entries())
	if err != nil {
		return Result{}, err
	}
	return n.finish(ctx, s, path, nil)
}

func (n *Navigator) finish(ctx context.Context, s *session, target string, others []history.Entry) (Result, error) {
	token, ok := s.resolver.Resolve(target)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnavailable, target)
	}
	s.store.AddWithIdentity(target, token)

	// A refused add leaves the previous entry last, so look the target up
	// instead of trusting Last.
	entry, ok := s.store.FindByPath(target)
	if !ok || entry.Identity != token {
		return Result{}, fmt.Errorf("%w: %q", ErrUnrecordable, target)
	}

	saved, err := s.store.SaveIfChanged(n.opts.HistoryFile)
	if err != nil {
		return Result{}, err
	}

	for _, o := range others {
		s.log.Printf("%d %s\n", o.ID, o.Path)
	}
	s.log.Printf("%d %s\n", entry.ID, entry.Path)
	output.FromContext(ctx).Directive(entry.Path)

	return Result{Entry: entry, Others: others, Saved: saved}, nil
}

// Listed is a history entry annotated for display.
type Listed struct {
	history.Entry
	Stale bool `json:"stale"`
}

// List records the current directory, persists if needed and returns all
// entries oldest first. Entries whose directory cannot be read are marked
// stale but kept.
func (n *Navigator) List(ctx context.Context) ([]Listed, error) {
	s, err := n.begin(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.SaveIfChanged(n.opts.HistoryFile); err != nil {
		return nil, err
	}

	entries := s.store.Entries()
	listed := make([]Listed, len(entries))
	for i, e := range entries {
		listed[i] = Listed{Entry: e, Stale: !readable(e.Path)}
	}
	return listed, nil
}

// readable reports whether the directory's contents can be listed.
func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	if _, err := f.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	return true
}
