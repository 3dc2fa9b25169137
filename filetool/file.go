package filetool

import (
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	"github.com/kbukum/smcemu/errors"
)

// File is a read-only handle to a path on a filesystem.
type File struct {
	fs   afero.Fs
	path string
}

// New returns a handle to path on fs. A nil fs means the OS filesystem.
func New(fs afero.Fs, path string) *File {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &File{fs: fs, path: path}
}

// Name returns the last element of the path.
func (f *File) Name() string { return filepath.Base(f.path) }

// Path returns the full path.
func (f *File) Path() string { return f.path }

// Exists reports whether the path exists.
func (f *File) Exists() bool {
	ok, err := afero.Exists(f.fs, f.path)
	return err == nil && ok
}

// IsDirectory reports whether the path is a directory.
func (f *File) IsDirectory() bool {
	ok, err := afero.IsDir(f.fs, f.path)
	return err == nil && ok
}

// Children lists the entries of a directory sorted by name.
func (f *File) Children() ([]*File, error) {
	infos, err := afero.ReadDir(f.fs, f.path)
	if err != nil {
		return nil, errors.NotFound("directory", f.path).WithCause(err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	children := make([]*File, 0, len(infos))
	for _, info := range infos {
		children = append(children, &File{fs: f.fs, path: filepath.Join(f.path, info.Name())})
	}
	return children, nil
}

// Bytes reads the whole file.
func (f *File) Bytes() ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		return nil, errors.NotFound("file", f.path).WithCause(err)
	}
	return data, nil
}

// Length returns the file size in bytes.
func (f *File) Length() (int64, error) {
	info, err := f.fs.Stat(f.path)
	if err != nil {
		return 0, errors.NotFound("file", f.path).WithCause(err)
	}
	return info.Size(), nil
}
