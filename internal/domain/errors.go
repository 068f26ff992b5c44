package domain

import "errors"

var (
	// ErrFetchFailed is returned when transactions or the summary could not be loaded
	ErrFetchFailed = errors.New("failed to fetch dashboard data")

	// ErrNotLoaded is returned when a query runs before the first successful refresh
	ErrNotLoaded = errors.New("no data loaded")

	// ErrUnsupportedFormat is returned for unknown export formats
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
