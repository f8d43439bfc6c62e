package mobileconf

import (
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

type keyFunc func(useTime time.Time, tag string) (string, error)
type deviceIDFunc func(steamID string) string

// confirmationParams builds the signed query parameters every mobileconf
// endpoint requires. The clock is read once per call: the timestamp that was
// signed and the t parameter sent must be the same value, and the tag must be
// byte-identical in both places, or Steam rejects the signature.
func (e *Executor) confirmationParams(tag string) (url.Values, error) {
	useTime := e.now()

	key, err := e.generateKey(useTime, tag)
	if err != nil {
		return nil, eris.Wrapf(err, "couldn't sign %q request", tag)
	}

	return url.Values{
		"p":   {e.deviceID(e.steamID.String())},
		"a":   {e.steamID.String()},
		"k":   {key},
		"t":   {strconv.FormatInt(useTime.Unix(), 10)},
		"m":   {"android"},
		"tag": {tag},
	}, nil
}
