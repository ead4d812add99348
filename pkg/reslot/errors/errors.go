package errors

import "errors"

var (
	// Input errors 📂
	ErrInvalidModDir     = errors.New("❌ not a valid mod directory")
	ErrCatalogUnreadable = errors.New("❌ catalog file unreadable")
	ErrSessionLocked     = errors.New("❌ mod directory is locked by another run")

	// Mapping errors 🔀
	ErrInvalidSlot    = errors.New("❌ invalid slot")
	ErrInvalidMapping = errors.New("❌ invalid slot mapping")

	// Catalog lookups 🗂️
	ErrUnknownDirInfo = errors.New("❌ unknown directory info")

	// Output errors 💾
	ErrCopyFailed        = errors.New("❌ file copy failed")
	ErrInsufficientSpace = errors.New("❌ insufficient disk space")

	// Session lifecycle 🔄
	ErrSessionFinalized = errors.New("❌ session already finalized")
)

// Exit codes used by the CLI
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalidArgs = 2
)

// IsInputError reports whether err means the session inputs were unusable.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidModDir) ||
		errors.Is(err, ErrCatalogUnreadable) ||
		errors.Is(err, ErrSessionLocked)
}

// IsMappingError reports whether err came from a malformed slot specification.
func IsMappingError(err error) bool {
	return errors.Is(err, ErrInvalidSlot) || errors.Is(err, ErrInvalidMapping)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsInputError(err), IsMappingError(err):
		return ExitInvalidArgs
	default:
		return ExitFailure
	}
}
