package cloudinary

import (
	"errors"
	"fmt"
)

var (
	ErrTooManyFiles   = errors.New("cannot upload more than 10 files at once")
	ErrAborted        = errors.New("upload aborted")
	ErrDeletionFailed = errors.New("could not delete image from media host")
)

// UploadRejectedError is returned when the media host answers an upload
// with a non-200 status.
type UploadRejectedError struct {
	StatusCode int
	Message    string
}

func (e *UploadRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upload rejected by media host (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("upload rejected by media host (status %d): %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure while talking to the media host.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("could not reach media host: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
