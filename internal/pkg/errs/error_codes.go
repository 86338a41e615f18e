/*
Package errs provides the application error type and business error codes.

Codes identify a failure both in server logs and in the JSON body returned to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body is not valid JSON for the endpoint.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing data after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the client exceeded its request rate.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Upload Errors
const (
	// ErrFileMissing indicates an upload request without a file part or file name.
	ErrFileMissing = 2301

	// ErrFileTypeUnsupported indicates an upload whose extension is not allow-listed.
	ErrFileTypeUnsupported = 2302
)

// 3xxx: Account and Session Errors
const (
	// ErrUserAlreadyExists indicates a registration for a taken username.
	ErrUserAlreadyExists = 3101

	// ErrInvalidCredentials indicates a login with an unknown username or a wrong password.
	ErrInvalidCredentials = 3102

	// ErrInvalidToken indicates a missing or unknown bearer token.
	ErrInvalidToken = 3103
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that the asset backend rejected an upload.
	ErrFileStorageFailed = 5001
)
