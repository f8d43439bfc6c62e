package mobileconf

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// parseConfirmationList extracts the pending confirmations from the mobile
// inbox page, in document order. The designated empty marker yields an empty
// list; an entry missing any of its three attributes fails the whole parse,
// since a partial list could silently skip the target confirmation.
func parseConfirmationList(page io.Reader) ([]Confirmation, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, eris.Wrapf(err, "couldn't parse confirmation inbox page")
	}

	if doc.Find("#mobileconf_empty").Length() > 0 {
		return []Confirmation{}, nil
	}

	var confirmations []Confirmation
	var entryErr error
	doc.Find("#mobileconf_list .mobileconf_list_entry").EachWithBreak(func(i int, entry *goquery.Selection) bool {
		elementID, ok := entry.Attr("id")
		if !ok || !strings.HasPrefix(elementID, "conf") {
			entryErr = eris.Wrapf(ErrMalformedEntry, "entry %d has no conf<digits> element id", i)
			return false
		}

		confID, ok := entry.Attr("data-confid")
		if !ok {
			entryErr = eris.Wrapf(ErrMalformedEntry, "entry %d has no data-confid", i)
			return false
		}

		key, ok := entry.Attr("data-key")
		if !ok {
			entryErr = eris.Wrapf(ErrMalformedEntry, "entry %d has no data-key", i)
			return false
		}

		confirmations = append(confirmations, Confirmation{
			ID:     strings.TrimPrefix(elementID, "conf"),
			ConfID: confID,
			Key:    key,
		})
		return true
	})
	if entryErr != nil {
		return nil, entryErr
	}

	return confirmations, nil
}

// parseDetailsOfferID pulls the trade offer id out of a confirmation details
// fragment: the segment after the first underscore of the tradeoffer
// element's id, e.g. "tradeofferid_4321" -> "4321".
func parseDetailsOfferID(fragment io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(fragment)
	if err != nil {
		return "", eris.Wrapf(err, "couldn't parse confirmation details fragment")
	}

	offer := doc.Find(".tradeoffer").First()
	if offer.Length() == 0 {
		return "", ErrNoTradeOfferElement
	}

	elementID, ok := offer.Attr("id")
	if !ok {
		return "", eris.Wrapf(ErrNoTradeOfferElement, "trade offer element has no id attribute")
	}

	parts := strings.Split(elementID, "_")
	if len(parts) < 2 {
		return "", eris.Wrapf(ErrNoTradeOfferElement, "trade offer element id %q has no offer id segment", elementID)
	}

	return parts[1], nil
}
