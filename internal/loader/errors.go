package loader

import "fmt"

// NotFoundError indicates the input path does not reference an existing file.
type NotFoundError struct{ Path string }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// DecodeError indicates the input is not UTF-8 text. Other encodings are not
// supported; re-export the file as UTF-8.
type DecodeError struct{ Path string }

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s as UTF-8 (re-export the file as UTF-8 and retry)", e.Path)
}

// ReadError indicates an I/O or syntax failure partway through a load.
// Labels accumulated before the failure remain in the returned Result.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
