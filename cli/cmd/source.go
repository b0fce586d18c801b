package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

type sourceFilesKey struct{}

// SourceFiles reads the expression source files named with --source.
type SourceFiles interface {
	IsZero() bool
	io.ReadCloser
}

type sourceFiles struct {
	files    []*closingReader
	hasStdin bool
	reader   io.Reader
}

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.files) == 0 && !s.hasStdin }

// Read reads the source files in order, followed by stdin if it was named.
func (s *sourceFiles) Read(p []byte) (int, error) {
	if s.reader == nil {
		readers := make([]io.Reader, 0, len(s.files)+1)
		for _, f := range s.files {
			readers = append(readers, f)
		}

		if s.hasStdin {
			readers = append(readers, os.Stdin)
		}

		s.reader = io.MultiReader(readers...)
	}

	return s.reader.Read(p)
}

// Close closes every source file not yet read to the end. Stdin is left
// open.
func (s *sourceFiles) Close() error {
	var errs []error

	for _, f := range s.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// closingReader closes its file as soon as a read fails or reaches EOF.
type closingReader struct {
	rc io.ReadCloser
}

func (c *closingReader) Read(p []byte) (int, error) {
	if c.rc == nil {
		return 0, io.EOF
	}

	n, err := c.rc.Read(p)
	if err != nil {
		_ = c.Close()
	}

	return n, err
}

func (c *closingReader) Close() error {
	if c.rc == nil {
		return nil
	}

	err := c.rc.Close()
	c.rc = nil

	return err
}

// fileKey uniquely identifies a file by its device and inode numbers.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource names stdin on the command line.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context that reads expressions from
// the given files.
//
// Files are deduplicated by device and inode, so a file named twice, through
// a symlink, or by relative and absolute path is read once. Every "-" names
// stdin, which is read once after all regular files. Files that cannot be
// opened are skipped.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	srcs := &sourceFiles{files: make([]*closingReader, 0, len(sources))}
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		if f, ok := openUniqueFile(src, seen); ok {
			srcs.files = append(srcs.files, &closingReader{rc: f})
		}
	}

	// Stdin may be named by "-" or by its device path.
	_, srcs.hasStdin = seen[stdinKey]

	if srcs.IsZero() {
		return nil
	}

	return srcs
}

func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, dup := seen[key]; dup {
		return nil, false
	}

	seen[key] = struct{}{}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return f, true
}

func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// CloseSourceFiles closes the source files in ctx that were not read to the
// end.
func CloseSourceFiles(ctx context.Context) error {
	if src := sourceFilesFrom(ctx); src != nil {
		return src.Close()
	}

	return nil
}
