package domain

import "errors"

var (
	// ErrInvalidCredentials is returned when sign-in is attempted without an email or org.
	ErrInvalidCredentials = errors.New("email and organisation are required")
	// ErrNotSignedIn is returned by operations that act on behalf of the current session.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrNoCertificate is returned when registration is attempted before a certificate exists.
	ErrNoCertificate = errors.New("no certificate; generate one first")
	// ErrCertificateExpired is returned when the held certificate is past its expiry.
	ErrCertificateExpired = errors.New("certificate expired")
	// ErrAggregationConflict is returned when an aggregation round is already running.
	ErrAggregationConflict = errors.New("aggregation already in progress")
	// ErrTrainingActive is returned when a training run is started while one is outstanding.
	ErrTrainingActive = errors.New("training already running")
	// ErrStorageUnavailable wraps failures of the durable key-value storage.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
