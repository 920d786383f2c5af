package domain

import "errors"

var (
	// ErrNoImage is returned when a scan request carries no image
	ErrNoImage = errors.New("no image uploaded")

	// ErrImageDecode is returned when the uploaded bytes are not a decodable image
	ErrImageDecode = errors.New("image could not be decoded")

	// ErrOCRFailure is returned when the OCR engine fails to produce text
	ErrOCRFailure = errors.New("OCR processing failed")

	// ErrClassifierFailure is returned when the classifier cannot produce a label
	ErrClassifierFailure = errors.New("classifier request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUploadTooLarge is returned when the uploaded image exceeds the configured size
	ErrUploadTooLarge = errors.New("uploaded image too large")
)
