package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

type testRequest struct {
	url    string
	values url.Values
}

func (r testRequest) Retryable() bool { return false }

func (r testRequest) Method() string { return http.MethodGet }

func (r testRequest) Url() string { return r.url }

func (r testRequest) Values() (url.Values, error) { return r.values, nil }

func (r testRequest) Headers() (http.Header, error) { return nil, nil }

func TestSendDecodesJson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tag") != "conf" {
			t.Errorf("tag param = %q, expected conf", r.URL.Query().Get("tag"))
		}
		w.Header().Set("Content-Type", JsonContentType)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	transport := NewTransport()

	var response struct {
		Success bool `json:"success"`
	}
	request := testRequest{url: server.URL, values: url.Values{"tag": {"conf"}}}
	if err := transport.Send(context.Background(), request, &response); err != nil {
		t.Fatal(err)
	}

	if !response.Success {
		t.Error("expected decoded success field")
	}
}

func TestSendRawRejectsNonOkEResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Eresult", "15")
		_, _ = w.Write([]byte("{}"))
	}))
	defer server.Close()

	transport := NewTransport()

	_, err := transport.SendRaw(context.Background(), testRequest{url: server.URL})
	if err == nil {
		t.Error("expected error for non-OK eresult, got none")
	}
}

func TestSendRawRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	transport := NewTransport()

	_, err := transport.SendRaw(context.Background(), testRequest{url: server.URL})
	if err == nil {
		t.Error("expected error for 5xx status, got none")
	}
}
