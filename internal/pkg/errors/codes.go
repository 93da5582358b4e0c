package errors

import "net/http"

var (
	// ErrStorage - the complaint store could not be read or written
	ErrStorage = New(
		"STORAGE_ERROR",
		"Complaint storage operation failed",
		http.StatusInternalServerError,
	)

	// ErrExternalService - geocoding or air quality provider failed or timed out
	ErrExternalService = New(
		"EXTERNAL_SERVICE_ERROR",
		"External service unavailable",
		http.StatusBadGateway,
	)

	ErrValidation = New(
		"VALIDATION_ERROR",
		"Invalid complaint data",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrOutOfBounds = New(
		"OUT_OF_BOUNDS",
		"Location is outside of the city area",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrComplaintNotFound = New(
		"COMPLAINT_NOT_FOUND",
		"Complaint not found",
		http.StatusNotFound,
	)

	ErrUnsupportedMedia = New(
		"UNSUPPORTED_MEDIA_TYPE",
		"Unsupported content or file type",
		http.StatusUnsupportedMediaType,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrTooManyRequests = New(
		"TOO_MANY_REQUESTS",
		"Too many requests, retry later",
		http.StatusTooManyRequests,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
