package mobileconf

import (
	"errors"
	"strings"
	"testing"
)

const inboxPage = `<html><body>
<div id="mobileconf_list">
	<div class="mobileconf_list_entry" id="conf6109123" data-confid="9001" data-key="18421827217516003525">
		<div class="mobileconf_list_entry_description">Trade with somebody</div>
	</div>
	<div class="mobileconf_list_entry" id="conf6109124" data-confid="9002" data-key="11116109124999999999">
		<div class="mobileconf_list_entry_description">Another trade</div>
	</div>
	<div class="mobileconf_list_entry" id="conf6109125" data-confid="9003" data-key="12345678901234567890">
		<div class="mobileconf_list_entry_description">Market listing</div>
	</div>
</div>
</body></html>`

const emptyInboxPage = `<html><body>
<div id="mobileconf_empty" class="mobileconf_header">
	<div>Nothing to confirm</div>
</div>
</body></html>`

func TestParseConfirmationList(t *testing.T) {
	confirmations, err := parseConfirmationList(strings.NewReader(inboxPage))
	if err != nil {
		t.Fatal(err)
	}

	if len(confirmations) != 3 {
		t.Fatalf("expected 3 confirmations, got %d", len(confirmations))
	}

	expected := []Confirmation{
		{ID: "6109123", ConfID: "9001", Key: "18421827217516003525"},
		{ID: "6109124", ConfID: "9002", Key: "11116109124999999999"},
		{ID: "6109125", ConfID: "9003", Key: "12345678901234567890"},
	}
	for i, want := range expected {
		if confirmations[i] != want {
			t.Errorf("confirmation %d = %+v, expected %+v", i, confirmations[i], want)
		}
	}
}

func TestParseConfirmationListEmptyMarker(t *testing.T) {
	confirmations, err := parseConfirmationList(strings.NewReader(emptyInboxPage))
	if err != nil {
		t.Fatal(err)
	}

	if len(confirmations) != 0 {
		t.Errorf("expected empty list, got %d confirmations", len(confirmations))
	}
}

func TestParseConfirmationListMissingKey(t *testing.T) {
	page := `<div id="mobileconf_list">
		<div class="mobileconf_list_entry" id="conf1" data-confid="1"></div>
	</div>`

	_, err := parseConfirmationList(strings.NewReader(page))
	if !errors.Is(err, ErrMalformedEntry) {
		t.Errorf("expected ErrMalformedEntry, got %v", err)
	}
}

func TestParseConfirmationListBadElementID(t *testing.T) {
	page := `<div id="mobileconf_list">
		<div class="mobileconf_list_entry" id="bogus1" data-confid="1" data-key="2"></div>
	</div>`

	_, err := parseConfirmationList(strings.NewReader(page))
	if !errors.Is(err, ErrMalformedEntry) {
		t.Errorf("expected ErrMalformedEntry, got %v", err)
	}
}

func TestParseDetailsOfferID(t *testing.T) {
	fragment := `<div class="mobileconf_details">
		<div class="tradeoffer" id="tradeofferid_4321"><div class="tradeoffer_items"></div></div>
	</div>`

	offerID, err := parseDetailsOfferID(strings.NewReader(fragment))
	if err != nil {
		t.Fatal(err)
	}

	if offerID != "4321" {
		t.Errorf("offer id = %q, expected %q", offerID, "4321")
	}
}

func TestParseDetailsOfferIDMissingElement(t *testing.T) {
	_, err := parseDetailsOfferID(strings.NewReader(`<div class="mobileconf_details"></div>`))
	if !errors.Is(err, ErrNoTradeOfferElement) {
		t.Errorf("expected ErrNoTradeOfferElement, got %v", err)
	}
}

func TestParseDetailsOfferIDBadElementID(t *testing.T) {
	fragment := `<div class="tradeoffer" id="tradeofferid"></div>`

	_, err := parseDetailsOfferID(strings.NewReader(fragment))
	if !errors.Is(err, ErrNoTradeOfferElement) {
		t.Errorf("expected ErrNoTradeOfferElement, got %v", err)
	}
}
