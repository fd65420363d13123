package session

import "errors"

var (
	ErrNoAPIClient      = errors.New("session: no API client configured")
	ErrMissingClientKey = errors.New("session: client key is required")
	ErrMissingNavigator = errors.New("session: a navigator is required")
	ErrNoCheckoutURL    = errors.New("session: no checkout URL returned for session")

	ErrFetchFailed    = errors.New("session: failed to fetch pricing configuration")
	ErrCheckoutFailed = errors.New("session: checkout failed")
	ErrBillingFailed  = errors.New("session: billing portal session failed")

	ErrNoValues    = errors.New("session: no configuration values loaded")
	ErrInvalidPath = errors.New("session: invalid field path")

	ErrClosed = errors.New("session: closed")
)
