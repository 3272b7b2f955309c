package output

import "fmt"

// IOError reports a failure to write the output directory.
type IOError struct {
	Op   string // "create", "clean", "write" or "rename"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
