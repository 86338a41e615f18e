package errs

import "net/http"

// errorMap holds the template for every known code. A zero Status means 400 Bad Request.
var errorMap = map[int]CustomError{
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Missing username or password"},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format"},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Malformed JSON body"},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data"},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data"},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later", Status: http.StatusTooManyRequests},

	ErrFileMissing:         {Code: ErrFileMissing, Message: "No file"},
	ErrFileTypeUnsupported: {Code: ErrFileTypeUnsupported, Message: "Unsupported file type"},

	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "Username already exists", Status: http.StatusConflict},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Invalid username or password", Status: http.StatusUnauthorized},
	ErrInvalidToken:       {Code: ErrInvalidToken, Message: "Invalid token", Status: http.StatusUnauthorized},

	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again", Status: http.StatusInternalServerError},
}
