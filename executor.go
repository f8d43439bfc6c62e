package mobileconf

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/escrow-tf/mobileconf/api"
	"github.com/escrow-tf/mobileconf/session"
	"github.com/escrow-tf/mobileconf/steamid"
	"github.com/escrow-tf/mobileconf/totp"
)

const (
	confTag    = "conf"
	detailsTag = "details"
	allowTag   = "allow"
	cancelTag  = "cancel"
)

const androidAppID = "com.valvesoftware.android.steam.community"

// Literal diagnostic Steam embeds in the inbox page when the identity secret
// is producing wrong codes. Matched byte-for-byte.
const incorrectCodesText = "Steam Guard Mobile Authenticator is providing incorrect Steam Guard codes."

// Executor locates and answers the pending mobile confirmation for a single
// trade offer. Each invocation re-fetches everything; no state is kept
// between calls beyond the session cookies owned by the transport.
type Executor struct {
	offerID   string
	transport api.Transport
	steamID   steamid.SteamID

	generateKey keyFunc
	deviceID    deviceIDFunc
	now         func() time.Time
}

func NewExecutor(tradeOfferID string, totpState *totp.State, webSession *session.Session) *Executor {
	return &Executor{
		offerID:     tradeOfferID,
		transport:   webSession.Transport(),
		steamID:     webSession.SteamID(),
		generateKey: totpState.GenerateConfirmationKey,
		deviceID:    totp.GetDeviceID,
		now:         time.Now,
	}
}

type confRequest struct {
	params url.Values
}

func (r confRequest) Retryable() bool { return true }

func (r confRequest) Method() string { return http.MethodGet }

func (r confRequest) Url() string { return api.CommunityBaseURL + "/mobileconf/conf" }

func (r confRequest) Values() (url.Values, error) { return r.params, nil }

func (r confRequest) Headers() (http.Header, error) {
	// the mobile app header makes Steam serve the confirmation markup
	// instead of a login redirect
	return http.Header{"X-Requested-With": {androidAppID}}, nil
}

type detailsRequest struct {
	confirmationID string
	params         url.Values
}

func (r detailsRequest) Retryable() bool { return true }

func (r detailsRequest) Method() string { return http.MethodGet }

func (r detailsRequest) Url() string {
	return fmt.Sprintf("%s/mobileconf/details/%s", api.CommunityBaseURL, url.PathEscape(r.confirmationID))
}

func (r detailsRequest) Values() (url.Values, error) { return r.params, nil }

func (r detailsRequest) Headers() (http.Header, error) { return nil, nil }

type ajaxOpRequest struct {
	params url.Values
}

// Answering a confirmation mutates server state; never re-sent on failure.
func (r ajaxOpRequest) Retryable() bool { return false }

func (r ajaxOpRequest) Method() string { return http.MethodGet }

func (r ajaxOpRequest) Url() string { return api.CommunityBaseURL + "/mobileconf/ajaxop" }

func (r ajaxOpRequest) Values() (url.Values, error) { return r.params, nil }

func (r ajaxOpRequest) Headers() (http.Header, error) {
	return http.Header{"X-Requested-With": {"XMLHttpRequest"}}, nil
}

// Confirmations fetches the mobile confirmation inbox and returns the
// pending confirmations in the order Steam lists them. An inbox carrying the
// incorrect-codes diagnostic yields ErrInvalidCredentials; an empty inbox
// yields an empty slice and no error.
func (e *Executor) Confirmations(ctx context.Context) ([]Confirmation, error) {
	params, err := e.confirmationParams(confTag)
	if err != nil {
		return nil, err
	}

	page, err := e.transport.SendRaw(ctx, confRequest{params: params})
	if err != nil {
		return nil, err
	}

	if bytes.Contains(page, []byte(incorrectCodesText)) {
		return nil, ErrInvalidCredentials
	}

	return parseConfirmationList(bytes.NewReader(page))
}

// offerIDFor fetches one confirmation's details fragment and extracts the
// trade offer id it refers to. The details tag is namespaced with the
// confirmation id so the signature only authorizes this one lookup.
func (e *Executor) offerIDFor(ctx context.Context, confirmation Confirmation) (string, error) {
	params, err := e.confirmationParams(detailsTag + confirmation.ID)
	if err != nil {
		return "", err
	}

	var details struct {
		HTML string `json:"html"`
	}
	err = e.transport.Send(ctx, detailsRequest{confirmationID: confirmation.ID, params: params}, &details)
	if err != nil {
		return "", err
	}

	return parseDetailsOfferID(strings.NewReader(details.HTML))
}

// findOfferConfirmation scans the inbox in document order, fetching details
// one confirmation at a time, and returns the first confirmation whose
// details refer to the target trade offer. The scan is deliberately
// sequential: each details fetch is audited server-side, and the first
// listed match must win. Callers bound the scan with ctx.
func (e *Executor) findOfferConfirmation(ctx context.Context) (Confirmation, error) {
	confirmations, err := e.Confirmations(ctx)
	if err != nil {
		return Confirmation{}, err
	}

	for _, confirmation := range confirmations {
		if err := ctx.Err(); err != nil {
			return Confirmation{}, err
		}

		offerID, err := e.offerIDFor(ctx, confirmation)
		if err != nil {
			return Confirmation{}, err
		}

		if offerID == e.offerID {
			return confirmation, nil
		}
	}

	return Confirmation{}, ErrConfirmationNotFound
}

// AjaxOpResponse is Steam's answer to an allow or cancel call, returned to
// the caller undecorated: the executor does not reinterpret success=false as
// an error.
type AjaxOpResponse struct {
	Success   bool   `json:"success"`
	NeedsAuth bool   `json:"needsauth,omitempty"`
	Message   string `json:"message,omitempty"`
	Details   string `json:"details,omitempty"`
}

// SendTradeAllowRequest locates the pending confirmation for the executor's
// trade offer and approves it. Returns ErrConfirmationNotFound when the
// offer has no pending confirmation. The approval call is dispatched at most
// once.
func (e *Executor) SendTradeAllowRequest(ctx context.Context) (AjaxOpResponse, error) {
	return e.answerOfferConfirmation(ctx, allowTag)
}

// SendTradeCancelRequest mirrors SendTradeAllowRequest but declines the
// confirmation instead.
func (e *Executor) SendTradeCancelRequest(ctx context.Context) (AjaxOpResponse, error) {
	return e.answerOfferConfirmation(ctx, cancelTag)
}

func (e *Executor) answerOfferConfirmation(ctx context.Context, tag string) (AjaxOpResponse, error) {
	confirmation, err := e.findOfferConfirmation(ctx)
	if err != nil {
		return AjaxOpResponse{}, err
	}

	params, err := e.confirmationParams(tag)
	if err != nil {
		return AjaxOpResponse{}, err
	}
	params.Set("op", tag)
	params.Set("cid", confirmation.ConfID)
	params.Set("ck", confirmation.Key)

	var response AjaxOpResponse
	if err := e.transport.Send(ctx, ajaxOpRequest{params: params}, &response); err != nil {
		return AjaxOpResponse{}, err
	}

	return response, nil
}
