package encoder

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// AcceptedExtensions is the advisory filter offered by the file picker.
// Nothing downstream relies on it: the bytes are encoded whatever they are.
var AcceptedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// ErrTruncated is returned when fewer bytes are read than the file had at
// selection time.
var ErrTruncated = errors.New("file read truncated")

// FileReadError reports that the bytes of a selected file could not be
// materialised.
type FileReadError struct {
	Name string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading file %q: %v", e.Name, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// File is a file selected for submission. Its bytes are read only when the
// file is encoded.
type File struct {
	Name        string
	Path        string
	ContentType string
	Size        int64
	// Accepted reports whether the extension passes AcceptedExtensions.
	Accepted bool

	fs afero.Fs
}

// Open selects the file at path. It stats the file and sniffs its content
// type, but does not keep it open.
func Open(fs afero.Fs, path string) (*File, error) {
	name := filepath.Base(path)

	info, err := fs.Stat(path)
	if err != nil {
		return nil, &FileReadError{Name: name, Err: err}
	}
	if info.IsDir() {
		return nil, &FileReadError{Name: name, Err: errors.New("is a directory")}
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, &FileReadError{Name: name, Err: err}
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, &FileReadError{Name: name, Err: err}
	}

	return &File{
		Name:        name,
		Path:        path,
		ContentType: mtype.String(),
		Size:        info.Size(),
		Accepted:    HasAcceptedExtension(name),
		fs:          fs,
	}, nil
}

// HasAcceptedExtension checks name against AcceptedExtensions, ignoring case.
func HasAcceptedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range AcceptedExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}

// ReadAll returns the full content of the file.
func (f *File) ReadAll() ([]byte, error) {
	if f == nil || f.fs == nil {
		return nil, &FileReadError{Name: "", Err: errors.New("no file selected")}
	}

	r, err := f.fs.Open(f.Path)
	if err != nil {
		return nil, &FileReadError{Name: f.Name, Err: err}
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileReadError{Name: f.Name, Err: err}
	}

	if int64(len(data)) < f.Size {
		return nil, &FileReadError{
			Name: f.Name,
			Err:  fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, len(data), f.Size),
		}
	}

	return data, nil
}
