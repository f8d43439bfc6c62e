package mobileconf

// Confirmation is one pending mobile confirmation scraped from the inbox
// page. ID, ConfID and Key always come from the same list entry; the server
// rejects an approval whose cid/ck pair is mixed across entries.
type Confirmation struct {
	// ID is the numeric suffix of the entry's "conf<digits>" element id.
	ID string

	// ConfID is the entry's data-confid attribute, echoed back verbatim as
	// the cid parameter on approval.
	ConfID string

	// Key is the entry's data-key attribute, echoed back verbatim as ck.
	Key string
}
