package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const defaultExtension = ".md"

// StoreConfig configures where post sources live and how they are named.
type StoreConfig struct {
	// Root is the directory treated as the authoritative set of post files.
	Root string
	// Extension selects which files count as posts (defaults to ".md").
	Extension string
}

// Store is the filesystem layer under the pipeline: it enumerates, reads,
// and (for offline tooling only) rewrites post sources. The request path
// treats the content root as read-only.
type Store struct {
	root      string
	extension string
}

// Entry identifies one post source file discovered under the content root.
type Entry struct {
	Slug string
	Name string
	Path string
}

// NewStore constructs a Store rooted at cfg.Root. The root is not required
// to exist yet; enumeration bootstraps it on first use.
func NewStore(cfg StoreConfig) *Store {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return &Store{
		root:      filepath.Clean(cfg.Root),
		extension: ext,
	}
}

// Root returns the content root directory.
func (s *Store) Root() string { return s.root }

// Extension returns the recognised content extension, including the dot.
func (s *Store) Extension() string { return s.extension }

// EnsureRoot creates the content root when it does not exist yet. Missing
// roots are a first-run state, not an error.
func (s *Store) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("posts store create root %s: %w", s.root, err)
	}
	return nil
}

// Entries enumerates post files directly under the content root. A missing
// root is created empty and yields an empty slice. Ordering follows the
// directory enumeration (sorted by name on most platforms); callers impose
// their own ordering on top.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if mkErr := s.EnsureRoot(); mkErr != nil {
				return nil, mkErr
			}
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("posts store read root %s: %w", s.root, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if !strings.HasSuffix(name, s.extension) {
			continue
		}
		slug := strings.TrimSuffix(name, s.extension)
		if slug == "" {
			continue
		}
		entries = append(entries, Entry{
			Slug: slug,
			Name: name,
			Path: filepath.Join(s.root, name),
		})
	}

	return entries, nil
}

// Read returns the raw bytes of the entry's source file.
func (s *Store) Read(ctx context.Context, entry Entry) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path := filepath.Join(s.root, entry.Name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("posts store read %s: %w", path, err)
	}
	return data, nil
}

// ReadSlug resolves the expected source path for slug and reads it. The
// wrapped error preserves fs.ErrNotExist so callers can distinguish a
// missing post from an unreadable one.
func (s *Store) ReadSlug(ctx context.Context, slug string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path, err := s.PathFor(slug)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("posts store read %s: %w", path, err)
	}
	return data, nil
}

// Write replaces the entry's source file. Only offline tooling (cover
// generation) goes through this; request-time reads never mutate the root.
func (s *Store) Write(ctx context.Context, entry Entry, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path := filepath.Join(s.root, entry.Name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("posts store write %s: %w", path, err)
	}
	return nil
}

// Create writes a brand-new source file for slug, refusing to replace an
// existing one, and returns its entry. The content root is created on
// demand so authoring works in a fresh checkout.
func (s *Store) Create(ctx context.Context, slug string, data []byte) (Entry, error) {
	select {
	case <-ctx.Done():
		return Entry{}, ctx.Err()
	default:
	}

	path, err := s.PathFor(slug)
	if err != nil {
		return Entry{}, err
	}
	if err := s.EnsureRoot(); err != nil {
		return Entry{}, err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Entry{}, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return Entry{}, fmt.Errorf("posts store create %s: %w", path, err)
	}

	_, writeErr := file.Write(data)
	if closeErr := file.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return Entry{}, fmt.Errorf("posts store create %s: %w", path, writeErr)
	}

	return Entry{Slug: slug, Name: slug + s.extension, Path: path}, nil
}

// PathFor maps a slug to its expected source path. Slugs carrying path
// separators or dot components never reach the filesystem.
func (s *Store) PathFor(slug string) (string, error) {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return "", ErrSlugRequired
	}
	if trimmed == "." || trimmed == ".." || strings.ContainsAny(trimmed, `/\`) {
		return "", ErrSlugInvalid
	}
	return filepath.Join(s.root, trimmed+s.extension), nil
}
