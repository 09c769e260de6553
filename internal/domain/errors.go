package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrSheetNotFound       = errors.New("B2B sheet not found in workbook")
	ErrEmptyBatch          = errors.New("import batch has no rows to process")
	ErrMissingSnapshot     = errors.New("import batch has no company snapshot")
	ErrMissingFile         = errors.New("no file provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
