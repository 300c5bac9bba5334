// Package resolver maps request paths onto a root directory and builds the
// OK/ERROR results served for them.
//
// A Resolver holds only values fixed at construction and is safe for
// concurrent use.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	vfs "github.com/CageChen/dirview/internal/fs"
)

// Messages served in error envelopes.
const (
	msgInvalidRoot = "Invalid root directory specified at startup!"
	msgNoSuchFile  = "%s: No such file"
)

// ErrNotText is returned when a file's content is not valid UTF-8.
var ErrNotText = errors.New("file content is not valid UTF-8 text")

// Option configures a Resolver.
type Option func(*Resolver)

// WithFileSystem replaces the local filesystem.
func WithFileSystem(fsys vfs.FileSystem) Option {
	return func(r *Resolver) { r.fs = fsys }
}

// WithOwnerLookup replaces the system user lookup used for entry owners.
func WithOwnerLookup(lookup vfs.OwnerLookup) Option {
	return func(r *Resolver) { r.owners = lookup }
}

// WithConfinement rejects effective paths that fall outside the root.
// Off by default: request paths are joined with the root as given.
func WithConfinement(confine bool) Option {
	return func(r *Resolver) { r.confine = confine }
}

// Resolver serves directory listings and file contents under a root.
type Resolver struct {
	root    string
	fs      vfs.FileSystem
	owners  vfs.OwnerLookup
	confine bool
}

// New creates a Resolver for root.
func New(root string, opts ...Option) *Resolver {
	r := &Resolver{
		root:   root,
		fs:     vfs.NewLocalFS(),
		owners: vfs.LookupUser,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the configured root directory.
func (r *Resolver) Root() string {
	return r.root
}

// RootValid reports whether the root currently exists as a directory.
func (r *Resolver) RootValid() bool {
	info, err := r.fs.Stat(r.root)
	return err == nil && info.IsDir()
}

// ListRoot lists the root directory, or fails with 400 if the root is not
// a directory.
func (r *Resolver) ListRoot(ctx context.Context) (Result, error) {
	if !r.RootValid() {
		return Fail(http.StatusBadRequest, msgInvalidRoot), nil
	}
	return r.ListDirectory(ctx, r.root)
}

// Resolve joins relativePath with the root and lists it, reads it, or
// reports it missing.
//
// The directory/file classification and the subsequent read are not atomic.
func (r *Resolver) Resolve(ctx context.Context, relativePath string) (Result, error) {
	relativePath = strings.TrimPrefix(relativePath, "/")
	if relativePath == "" {
		return r.ListRoot(ctx)
	}
	if !r.RootValid() {
		return Fail(http.StatusBadRequest, msgInvalidRoot), nil
	}

	path := r.EffectivePath(relativePath)
	if r.confine && !r.contains(path) {
		return Fail(http.StatusNotFound, fmt.Sprintf(msgNoSuchFile, path)), nil
	}

	// Any stat failure classifies the path as neither directory nor file.
	info, err := r.fs.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return r.ListDirectory(ctx, path)
	case err == nil && info.IsRegular():
		return r.ReadFile(ctx, path)
	default:
		return Fail(http.StatusNotFound, fmt.Sprintf(msgNoSuchFile, path)), nil
	}
}

// EffectivePath joins relativePath with the root.
func (r *Resolver) EffectivePath(relativePath string) string {
	return filepath.Join(r.root, relativePath)
}

func (r *Resolver) contains(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ListDirectory returns an OK result with one Entry per immediate child of path.
// Any owner lookup failure fails the whole listing.
func (r *Resolver) ListDirectory(ctx context.Context, path string) (Result, error) {
	infos, err := r.fs.ReadDir(path)
	if err != nil {
		return Result{}, fmt.Errorf("read dir %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		owner, err := r.owners(info.UID)
		if err != nil {
			return Result{}, fmt.Errorf("owner of %s: %w", filepath.Join(path, info.Name), err)
		}
		entries = append(entries, Entry{
			Name:        info.Name,
			Owner:       owner,
			Path:        filepath.Join(path, info.Name),
			IsDir:       info.IsDir(),
			Permissions: info.Permissions(),
			SizeBytes:   info.Size,
		})
	}
	return OK(entries), nil
}

// ReadFile returns an OK result carrying the text content of path.
func (r *Resolver) ReadFile(_ context.Context, path string) (Result, error) {
	text, err := r.ReadText(path)
	if err != nil {
		return Result{}, err
	}
	return OK(text), nil
}

// ReadText reads path and checks that it decodes as UTF-8.
func (r *Resolver) ReadText(path string) (string, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrNotText)
	}
	return string(data), nil
}
