package cmd

import "fmt"

// ReportWriteError indicates the report could not be saved.
type ReportWriteError struct {
	Path string
	Err  error
}

func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Err)
}

func (e *ReportWriteError) Unwrap() error {
	return e.Err
}
