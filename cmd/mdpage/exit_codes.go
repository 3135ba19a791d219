package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdpage"
	"github.com/alnah/go-mdpage/internal/config"
)

// Exit codes for the mdpage CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigTooLarge) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdpage.ErrMissingPath) ||
		errors.Is(err, mdpage.ErrSourceNotFound) ||
		errors.Is(err, mdpage.ErrInvalidImagePath) ||
		errors.Is(err, mdpage.ErrInvalidAnchorPolicy) ||
		errors.Is(err, mdpage.ErrInvalidImagePolicy) ||
		errors.Is(err, mdpage.ErrInvalidCSSMode) ||
		errors.Is(err, mdpage.ErrInvalidFilename) ||
		errors.Is(err, mdpage.ErrInvalidOutputDir) ||
		errors.Is(err, mdpage.ErrInvalidHighlightStyle) ||
		errors.Is(err, mdpage.ErrStyleNotFound) ||
		errors.Is(err, mdpage.ErrTemplateNotFound) ||
		errors.Is(err, mdpage.ErrInvalidAssetPath) ||
		errors.Is(err, mdpage.ErrMarkerNotFound) ||
		errors.Is(err, mdpage.ErrUnknownMIME) ||
		errors.Is(err, mdpage.ErrFrontMatter) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdpage.ErrImageRead) ||
		errors.Is(err, mdpage.ErrReadMarkdown) ||
		errors.Is(err, mdpage.ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}
