package normalizer

import (
	"fmt"
	"strings"

	"github.com/nimbbl-tech/checkout-sandbox/internal/model"
)

// DetailEntries assembles the human-readable secondary detail paragraphs for
// a result, in fixed order, keeping only entries with a non-empty value.
// Encrypted results carry no details.
func DetailEntries(r model.PaymentResult) []string {
	if r.IsEncrypted {
		return nil
	}

	var entries []string
	add := func(label, value string) {
		if value != "" {
			entries = append(entries, label+": "+value)
		}
	}

	add("Reason", r.Reason)
	add("Cancellation Reason", r.CancellationReason)
	add("Attempts", r.Attempts)

	if r.ReferrerPlatform != "" {
		platform := r.ReferrerPlatform
		if r.ReferrerPlatformVersion != "" {
			platform = fmt.Sprintf("%s %s", platform, r.ReferrerPlatformVersion)
		}
		add("Referrer Platform", platform)
	}

	switch {
	case r.DeviceName != "" && r.DeviceOSName != "":
		add("Device", fmt.Sprintf("%s (%s)", r.DeviceName, r.DeviceOSName))
	case r.DeviceName != "":
		add("Device", r.DeviceName)
	case r.DeviceOSName != "":
		add("Device", r.DeviceOSName)
	}

	add("IP Address", r.DeviceIPAddress)

	var parts []string
	for _, p := range []string{r.ShippingCity, r.ShippingState, r.ShippingCountry, r.ShippingPincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	add("Shipping Address", strings.Join(parts, ", "))

	return entries
}

// SecondaryDetails joins the detail entries into one block, each entry on its
// own paragraph. Empty when nothing qualifies.
func SecondaryDetails(r model.PaymentResult) string {
	return strings.Join(DetailEntries(r), "\n\n")
}
