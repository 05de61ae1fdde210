package model

// EncryptionStatus describes what is known about a file's encryption.
type EncryptionStatus int

const (
	EncryptionUnknown EncryptionStatus = iota
	EncryptionNone
	EncryptionLocked
)

func (s EncryptionStatus) String() string {
	switch s {
	case EncryptionNone:
		return "ok"
	case EncryptionLocked:
		return "locked"
	}
	return "unknown"
}

// FileItem is one entry in a batch run: an input PDF plus the header and
// footer text to stamp onto it. HeaderText defaults to the file name at
// import time; FooterText may contain {page} and {total} placeholders.
type FileItem struct {
	Path       string
	Name       string
	SizeMB     float64
	PageCount  int
	Encryption EncryptionStatus

	HeaderText string
	FooterText string

	// OutputName optionally overrides the generated output file name.
	OutputName string
}

// ProcessResult records the outcome of processing a single file.
type ProcessResult struct {
	Input  string
	Output string
	Err    error
}

// Ok reports whether the file was processed successfully.
func (r ProcessResult) Ok() bool {
	return r.Err == nil
}
