// Package glob lists file system trees level by level and filters the
// entries by glob pattern. Directories are expanded lazily: a directory is
// read only when its level reaches the front of the traversal.
package glob

import (
	"context"
	"io/fs"
	"iter"
	"path"

	"github.com/lguimbarda/treeflow/flow/core"
	"github.com/lguimbarda/treeflow/flow/recursive"
)

// DefaultBufferSize is the default buffer size for glob operations.
const DefaultBufferSize = 64

// FileInfo contains information about a file or directory.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	Mode    fs.FileMode
	IsDir   bool
	ModTime int64
}

func newFileInfo(p string, info fs.FileInfo) FileInfo {
	return FileInfo{
		Path:    p,
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime().Unix(),
	}
}

// Stat returns the FileInfo of name in fsys.
func Stat(fsys fs.FS, name string) (FileInfo, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return FileInfo{}, err
	}
	return newFileInfo(name, info), nil
}

// Entries returns the entries of dir in lexical order. The directory is read
// on the first pull; the sequence ends after the first error.
func Entries(fsys fs.FS, dir string) iter.Seq2[FileInfo, error] {
	return func(yield func(FileInfo, error) bool) {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			yield(FileInfo{}, err)
			return
		}
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil {
				yield(FileInfo{}, err)
				return
			}
			if !yield(newFileInfo(path.Join(dir, entry.Name()), info), nil) {
				return
			}
		}
	}
}

// ListDir creates a Stream of the entries of dir. A read error is emitted as
// an error Result.
func ListDir(fsys fs.FS, dir string) core.Stream[FileInfo] {
	return ListDirBuffered(fsys, dir, DefaultBufferSize)
}

// ListDirBuffered creates a ListDir stream with a specified buffer size.
func ListDirBuffered(fsys fs.FS, dir string, bufferSize int) core.Stream[FileInfo] {
	return core.Emit(func(ctx context.Context) <-chan core.Result[FileInfo] {
		out := make(chan core.Result[FileInfo], bufferSize)
		go func() {
			defer close(out)
			for info, err := range Entries(fsys, dir) {
				res := core.Ok(info)
				if err != nil {
					res = core.Err[FileInfo](err)
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}()
		return out
	})
}

// Tree returns root followed by everything below it, one directory level at
// a time. The first error ends the sequence.
func Tree(fsys fs.FS, root string, opts ...recursive.Option) iter.Seq2[FileInfo, error] {
	seed := func(yield func(FileInfo, error) bool) {
		yield(Stat(fsys, root))
	}
	expand := func(info FileInfo) (iter.Seq2[FileInfo, error], error) {
		if !info.IsDir {
			return nil, nil
		}
		return Entries(fsys, info.Path), nil
	}
	return recursive.MapErr(seed, expand, opts...)
}

// Walk is the Stream form of Tree. Directories are listed with ListDir.
func Walk(fsys fs.FS, root string, opts ...recursive.Option) core.Stream[FileInfo] {
	seed := core.Emit(func(ctx context.Context) <-chan core.Result[FileInfo] {
		out := make(chan core.Result[FileInfo], 1)
		info, err := Stat(fsys, root)
		if err != nil {
			out <- core.Err[FileInfo](err)
		} else {
			out <- core.Ok(info)
		}
		close(out)
		return out
	})
	expand := func(info FileInfo) core.Stream[FileInfo] {
		if !info.IsDir {
			return nil
		}
		return ListDir(fsys, info.Path)
	}
	return recursive.Transform(expand, opts...).Apply(context.Background(), seed)
}

// Filter creates a Transformer that keeps the entries whose name matches
// pattern, using path.Match. A malformed pattern is reported once per entry.
func Filter(pattern string) core.Transformer[FileInfo, FileInfo] {
	return core.Transmit(func(ctx context.Context, in <-chan core.Result[FileInfo]) <-chan core.Result[FileInfo] {
		out := make(chan core.Result[FileInfo], DefaultBufferSize)
		go func() {
			defer close(out)
			for res := range in {
				if res.IsValue() {
					matched, err := path.Match(pattern, res.Value().Name)
					if err != nil {
						res = core.Err[FileInfo](err)
					} else if !matched {
						continue
					}
				}
				select {
				case <-ctx.Done():
					return
				case out <- res:
				}
			}
		}()
		return out
	})
}
