package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// EResult is Steam's generic result code, surfaced on community responses
// via the x-eresult header. Only the values the mobile confirmation
// endpoints are known to emit are named here.
type EResult int

const (
	InvalidResult            EResult = 0
	OKResult                 EResult = 1
	FailResult               EResult = 2
	InvalidParamResult       EResult = 8
	BusyResult               EResult = 10
	InvalidStateResult       EResult = 11
	AccessDeniedResult       EResult = 15
	TimeoutResult            EResult = 16
	ServiceUnavailableResult EResult = 20
	NotLoggedOnResult        EResult = 21
	LimitExceededResult      EResult = 25
	ExpiredResult            EResult = 27
	DuplicateRequestResult   EResult = 29
	RateLimitExceededResult  EResult = 84
	TimeNotSyncedResult      EResult = 93
)

func EnsureSuccessResponse(response *http.Response) error {
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %v", response.StatusCode)
	}

	return nil
}

func EnsureEResultResponse(httpResponse *http.Response) error {
	eResult := InvalidResult
	eResults, hasEResult := httpResponse.Header["X-Eresult"]
	if !hasEResult {
		return nil
	}

	for _, result := range eResults {
		if parsedResult, parseErr := strconv.ParseInt(result, 10, 64); parseErr == nil {
			eResult = EResult(parsedResult)
			break
		}
	}

	if eResult != OKResult {
		if errorMessageHeaders, ok := httpResponse.Header["X-Error_message"]; ok {
			errorMessages := make([]error, len(errorMessageHeaders))
			for i, header := range errorMessageHeaders {
				errorMessages[i] = errors.New(header)
			}

			return fmt.Errorf("steam responded with non-OK Result: %v, %v", eResult, errors.Join(errorMessages...))
		}

		return fmt.Errorf("steam responded with non-OK Result: %v", eResult)
	}

	return nil
}
