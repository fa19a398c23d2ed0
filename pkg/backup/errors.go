package backup

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("backup: invalid configuration")
	ErrNotFound      = errors.New("backup: snapshot not found")
	ErrAccessDenied  = errors.New("backup: access denied")
	ErrSaveFailed    = errors.New("backup: save failed")
	ErrWriteFailed   = errors.New("backup: write failed")
)

// wrapS3Error maps S3 API errors onto the package sentinels.
// The original error is formatted with %v so callers match sentinels only.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
