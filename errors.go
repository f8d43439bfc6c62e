package mobileconf

import "errors"

var (
	// ErrInvalidCredentials means the inbox page reported that the mobile
	// authenticator is producing incorrect Steam Guard codes: the identity
	// secret is wrong or desynchronized. Retrying will not help.
	ErrInvalidCredentials = errors.New("mobile authenticator is providing incorrect Steam Guard codes; identity secret is invalid or desynchronized")

	// ErrConfirmationNotFound means the full inbox was scanned and no
	// pending confirmation referred to the target trade offer. This is the
	// expected outcome when the offer was already confirmed, has expired, or
	// the wrong offer id was supplied.
	ErrConfirmationNotFound = errors.New("no pending confirmation matches the trade offer")

	ErrMalformedEntry      = errors.New("confirmation entry is missing a required attribute")
	ErrNoTradeOfferElement = errors.New("confirmation details have no trade offer element")
)
