package report

import "fmt"

// NotFoundError is returned when a run or archive does not exist.
type NotFoundError struct {
	// "run" or "archive"
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Name)
}

// IOError wraps a filesystem failure while reading, writing or deleting.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// MalformedReportError is returned when a result file exists but cannot be parsed.
type MalformedReportError struct {
	Path string
	Err  error
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("malformed report %s: %v", e.Path, e.Err)
}

func (e *MalformedReportError) Unwrap() error {
	return e.Err
}

// InvalidNameError is returned for run or archive names that are not a
// single path element or do not follow the run timestamp layout.
type InvalidNameError struct {
	Name string
	Err  error
}

func (e *InvalidNameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid name %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("invalid name %q", e.Name)
}

func (e *InvalidNameError) Unwrap() error {
	return e.Err
}
