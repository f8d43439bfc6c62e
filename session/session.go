package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/escrow-tf/mobileconf/api"
	"github.com/escrow-tf/mobileconf/steamid"
)

// Session is an already-authenticated community web session: a transport
// whose cookie jar carries the steamLoginSecure token, plus the account's
// steam id derived from that token. Login and token refresh are the caller's
// concern; Session only models the handle this module consumes.
type Session struct {
	transport *api.HttpTransport
	steamID   steamid.SteamID
}

// New installs the steamLoginSecure value ("<steamid64>||<access token JWT>")
// on transport's cookie jar and derives the account steam id from the
// token's subject claim. Expired tokens are rejected up front, since every
// request made with one would fail with NotLoggedOn anyway.
func New(transport *api.HttpTransport, steamLoginSecure string) (*Session, error) {
	parts := strings.SplitN(steamLoginSecure, "||", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("steamLoginSecure must be of the form <steamid64>||<access token>")
	}

	accessToken, _, err := jwt.NewParser().ParseUnverified(parts[1], jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("access token was invalid JWT, credentials probably incorrect: %v", err)
	}

	tokenSubject, err := accessToken.Claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("access token was missing subject claim: %v", err)
	}

	if tokenSubject != parts[0] {
		return nil, fmt.Errorf("access token subject %q does not match steamLoginSecure steamid %q", tokenSubject, parts[0])
	}

	steamID, err := steamid.ParseSteamID64(tokenSubject)
	if err != nil {
		return nil, fmt.Errorf("access token Sub returned invalid steamid64: %v", err)
	}

	expiration, err := accessToken.Claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("access token was missing expiration claim: %v", err)
	}
	if expiration != nil && expiration.Before(time.Now()) {
		return nil, fmt.Errorf("access token expired at %v", expiration.Time)
	}

	cookieUrl := &url.URL{Scheme: "https", Host: "steamcommunity.com", Path: "/"}
	transport.CookieJar().SetCookies(cookieUrl, []*http.Cookie{
		{
			Name:  "steamLoginSecure",
			Value: url.QueryEscape(steamLoginSecure),
		},
	})

	return &Session{
		transport: transport,
		steamID:   steamID,
	}, nil
}

func (s *Session) SteamID() steamid.SteamID {
	return s.steamID
}

func (s *Session) Transport() *api.HttpTransport {
	return s.transport
}
