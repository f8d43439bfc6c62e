package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rotisserie/eris"
)

const CommunityBaseURL = "https://steamcommunity.com"

const JsonContentType = "application/json"
const FormContentType = "application/x-www-form-urlencoded"

// Request describes one HTTP call to a community endpoint. Retryable must
// return false for any request with server-side effects that are not safe to
// repeat; the transport never re-sends those on transport failure.
type Request interface {
	Retryable() bool
	Method() string
	Url() string
	Values() (url.Values, error)
	Headers() (http.Header, error)
}

type Transport interface {
	CookieJar() http.CookieJar
	Send(ctx context.Context, request Request, response any) error
	SendRaw(ctx context.Context, request Request) ([]byte, error)
	HttpClient() *http.Client
}

type HttpTransport struct {
	client      *http.Client
	retryClient *retryablehttp.Client
}

func NewTransport() *HttpTransport {
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic("Failed to create cookie jar, which should never happen as cookiejar.New does not return any errors")
	}

	cookieUrl := &url.URL{Scheme: "https", Host: "steamcommunity.com", Path: "/"}
	jar.SetCookies(cookieUrl, []*http.Cookie{
		{
			Name:  "mobileClient",
			Value: "android",
		},
		{
			Name:  "mobileClientVersion",
			Value: "777777 3.0.0",
		},
	})

	httpClient := &http.Client{
		Transport: cleanhttp.DefaultPooledTransport(),
		Jar:       jar,
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.Logger = nil

	return &HttpTransport{
		client:      httpClient,
		retryClient: retryClient,
	}
}

func (c HttpTransport) CookieJar() http.CookieJar {
	return c.client.Jar
}

func (c HttpTransport) HttpClient() *http.Client {
	return c.client
}

// SendRaw issues the request and returns the response body bytes after
// status and x-eresult checks. Used for endpoints that serve markup rather
// than JSON.
func (c HttpTransport) SendRaw(ctx context.Context, request Request) ([]byte, error) {
	httpResponse, err := c.do(ctx, request)
	if err != nil {
		return nil, err
	}

	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			log.Printf("Error closing steam response body: %v", closeErr)
		}
	}(httpResponse.Body)

	if err := EnsureSuccessResponse(httpResponse); err != nil {
		return nil, err
	}

	if err := EnsureEResultResponse(httpResponse); err != nil {
		return nil, err
	}

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, eris.Errorf("couldn't read response body: %v", err)
	}

	return responseBody, nil
}

// Send issues the request and unmarshals the JSON response body into
// response when it is non-nil.
func (c HttpTransport) Send(ctx context.Context, request Request, response any) error {
	responseBody, err := c.SendRaw(ctx, request)
	if err != nil {
		return err
	}

	if response != nil {
		if err := json.Unmarshal(responseBody, response); err != nil {
			return eris.Errorf("couldn't unmarshal response: %v", err)
		}
	}

	return nil
}

func (c HttpTransport) do(ctx context.Context, request Request) (*http.Response, error) {
	httpMethod := request.Method()

	requestValues, valuesErr := request.Values()
	if valuesErr != nil {
		return nil, valuesErr
	}

	requestUrl := request.Url()

	var httpBody io.Reader
	if requestValues != nil {
		if httpMethod == http.MethodGet {
			if !strings.HasSuffix(requestUrl, "?") {
				requestUrl += "?"
			}
			requestUrl += requestValues.Encode()
		} else {
			httpBody = strings.NewReader(requestValues.Encode())
		}
	}

	httpRequest, httpRequestErr := http.NewRequestWithContext(ctx, httpMethod, requestUrl, httpBody)
	if httpRequestErr != nil {
		return nil, httpRequestErr
	}

	httpRequest.Header.Add("Accept", "*/*")
	httpRequest.Header.Add("User-Agent", "okhttp/3.12.12")
	if httpMethod == http.MethodPost {
		httpRequest.Header.Add("Content-Type", FormContentType)
	}

	headers, headersErr := request.Headers()
	if headersErr != nil {
		return nil, headersErr
	}

	for headerKey, headerValues := range headers {
		for _, headerValue := range headerValues {
			httpRequest.Header.Add(headerKey, headerValue)
		}
	}

	httpClient := c.client
	if request.Retryable() {
		httpClient = c.retryClient.StandardClient()
	}

	httpResponse, httpResponseErr := httpClient.Do(httpRequest)
	if httpResponseErr != nil {
		return nil, eris.Errorf("request to Steam failed: %v", httpResponseErr)
	}

	return httpResponse, nil
}
