package services

import "errors"

// NoResumeWarning is shown in place of results when no file was supplied.
const NoResumeWarning = "⚠️ Upload a resume."

var (
	ErrNoResume            = &UserInputError{Message: NoResumeWarning}
	ErrUnsupportedFormat   = errors.New("unsupported file type")
	ErrExtractionFailed    = errors.New("text extraction failed")
	ErrMalformedResponse   = errors.New("model response is not valid JSON")
	ErrSchemaMismatch      = errors.New("model response does not match the analysis schema")
	ErrProviderUnavailable = errors.New("llm provider is not configured")
	ErrUnknownProvider     = errors.New("unknown llm provider")
)

// UserInputError is recovered locally and shown to the user as-is.
type UserInputError struct {
	Message string
}

func (e *UserInputError) Error() string {
	return e.Message
}

func IsUserInputError(err error) bool {
	var target *UserInputError
	return errors.As(err, &target)
}
