package iocollect

import (
	"encoding/json"
	"io"
	"os"
)

// docWriter streams documents into a single JSON array. Each document
// is written followed by a comma; Finalize seeks back over the last
// comma and writes the closing bracket, so the whole result set never
// sits in memory.
type docWriter struct {
	f     *os.File
	count int
}

func newDocWriter(path string) (*docWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &FilesystemError{Path: path, Err: err}
	}
	if _, err := f.WriteString("["); err != nil {
		f.Close()
		return nil, &FilesystemError{Path: path, Err: err}
	}
	return &docWriter{f: f}, nil
}

func (w *docWriter) write(doc map[string]any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return &FilesystemError{Path: w.f.Name(), Err: err}
	}
	b = append(b, ',')
	if _, err := w.f.Write(b); err != nil {
		return &FilesystemError{Path: w.f.Name(), Err: err}
	}
	w.count++
	return nil
}

// finalize closes the array. With at least one document written the
// trailing comma is overwritten by the bracket.
func (w *docWriter) finalize() error {
	if w.count > 0 {
		if _, err := w.f.Seek(-1, io.SeekEnd); err != nil {
			w.f.Close()
			return &FilesystemError{Path: w.f.Name(), Err: err}
		}
	}
	if _, err := w.f.WriteString("]"); err != nil {
		w.f.Close()
		return &FilesystemError{Path: w.f.Name(), Err: err}
	}
	if err := w.f.Close(); err != nil {
		return &FilesystemError{Path: w.f.Name(), Err: err}
	}
	return nil
}

// close releases the file without finishing the array. A failed run
// leaves the partial file on disk, deliberately not valid JSON.
func (w *docWriter) close() {
	w.f.Close()
}

// discard abandons the file, used when identifier resolution comes up
// empty: a no-hits run leaves nothing behind.
func (w *docWriter) discard() {
	name := w.f.Name()
	w.f.Close()
	os.Remove(name)
}
