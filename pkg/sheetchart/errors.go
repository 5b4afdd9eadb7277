package sheetchart

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetchart-go/pkg/sheetchart/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrDecodeFailure indicates the spreadsheet bytes could not be parsed.
var ErrDecodeFailure = errors.New("spreadsheet decode failed")

// ErrIngestionInProgress indicates another ingestion holds the session.
var ErrIngestionInProgress = errors.New("ingestion already in progress")

// ErrStaleIngestion indicates a newer ingestion was applied first.
var ErrStaleIngestion = errors.New("ingestion superseded by a newer request")

// ErrInvalidChartKind indicates a chart kind outside bar, line and pie.
var ErrInvalidChartKind = models.ErrInvalidChartKind

// DecodeError represents a failed decode of one uploaded file.
type DecodeError struct {
	FileName string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error in file %q: %v", e.FileName, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches ErrDecodeFailure.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailure
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(fileName string, err error) *DecodeError {
	return &DecodeError{
		FileName: fileName,
		Err:      err,
	}
}
