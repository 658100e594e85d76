package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/signadot/rendertree"
	"github.com/signadot/rendertree/debug"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/parse"
)

// ErrNeedsResync is returned while the session holds no usable tree:
// before the first Join and after a diff failed to apply. Only Join
// clears it.
var ErrNeedsResync = errors.New("session needs a fresh render")

// RenderedKey holds the root payload inside a join reply.
const RenderedKey = "rendered"

// Session holds the current tree of one rendered view between diffs.
// Its methods may be called from multiple goroutines; calls are applied
// one at a time in the order they acquire the session.
type Session struct {
	mu       sync.Mutex
	root     *ir.Root
	rendered string

	log      *slog.Logger
	onRender func(string)
	validate bool
}

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithOnRender registers f to be called with the new output after every
// successful join or diff, while the session is held.
func WithOnRender(f func(string)) Option {
	return func(s *Session) { s.onRender = f }
}

// WithValidate makes Join check every reference and arity invariant of the
// initial tree, including components not reachable from the root.
func WithValidate(v bool) Option {
	return func(s *Session) { s.validate = v }
}

func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	return s
}

// Join replaces the tree with the one decoded from payload, a generic value
// as produced by parse.Parse. A join reply wrapping the root payload under
// "rendered" is accepted as well.
func (s *Session) Join(payload any) (string, error) {
	if m, ok := payload.(map[string]any); ok {
		if v, ok := m[RenderedKey]; ok {
			payload = v
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root, s.rendered = nil, ""
	root, err := parse.Root(payload)
	if err != nil {
		s.log.Error("join", "error", err)
		return "", err
	}
	if s.validate {
		if err := root.Validate(); err != nil {
			s.log.Error("join", "error", err)
			return "", err
		}
	}
	out, err := rendertree.BuildString(root)
	if err != nil {
		s.log.Error("join", "error", err)
		return "", err
	}
	s.set(root, out)
	s.log.Info("join", "components", len(root.Components), "bytes", len(out))
	return out, nil
}

// Diff applies the diff decoded from payload to the tree. If the diff
// cannot be decoded the tree is kept. If it cannot be merged or the result
// cannot be built, the tree is dropped and the session needs a new Join.
func (s *Session) Diff(payload any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return "", ErrNeedsResync
	}
	diff, err := parse.Diff(payload)
	if err != nil {
		s.log.Error("diff", "error", err)
		return "", err
	}
	root, out, err := rendertree.MergeString(s.root, diff)
	if err != nil {
		s.root, s.rendered = nil, ""
		s.log.Error("diff", "error", err, "resync", true)
		return "", fmt.Errorf("%w: %w", ErrNeedsResync, err)
	}
	s.set(root, out)
	s.log.Debug("diff", "components", len(diff.Components), "bytes", len(out))
	return out, nil
}

// DropComponents forgets the given components. The output is not rebuilt:
// the server only drops components that are no longer referenced.
func (s *Session) DropComponents(cids ...int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return ErrNeedsResync
	}
	s.root = s.root.DropComponents(cids...)
	s.log.Debug("drop", "cids", cids)
	return nil
}

// Root returns the current tree, or nil if the session needs a Join.
func (s *Session) Root() *ir.Root {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Rendered returns the output of the current tree.
func (s *Session) Rendered() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rendered
}

func (s *Session) set(root *ir.Root, out string) {
	s.root, s.rendered = root, out
	if debug.Session() {
		debug.Logf("session tree\n%s\n", debug.Root{Root: root})
	}
	if s.onRender != nil {
		s.onRender(out)
	}
}
