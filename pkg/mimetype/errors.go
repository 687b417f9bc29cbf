package mimetype

import "errors"

var (
	ErrInvalidDocument = errors.New("mimetype.invalid_document")
	ErrInvalidEntry    = errors.New("mimetype.invalid_entry")
	ErrFailedToOpen    = errors.New("mimetype.failed_to_open")
)
