package dto

import "encoding/json"

// Typed notification payloads, keyed by the notification's Type tag. The
// stored Data column stays opaque jsonb; these give producers and clients a
// closed set of known shapes with a generic fallback for forward
// compatibility.

type BookingPayload struct {
	BookingID string `json:"booking_id"`
	ListingID string `json:"listing_id"`
	Status    string `json:"status"`
}

type ModerationPayload struct {
	ListingID string `json:"listing_id"`
	Status    string `json:"status"`
	Comment   string `json:"comment,omitempty"`
}

type PartnerPayload struct {
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
	ReferralCode  string `json:"referral_code,omitempty"`
}

// DecodeNotificationData interprets a raw Data blob according to the
// notification type. Unknown types (and decode failures on known ones)
// fall back to a generic map so that old clients keep working when new
// kinds appear.
func DecodeNotificationData(notificationType string, raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}

	switch notificationType {
	case "booking_request", "booking_status":
		var p BookingPayload
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p
		}
	case "moderation_result":
		var p ModerationPayload
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p
		}
	case "partner_result":
		var p PartnerPayload
		if err := json.Unmarshal(raw, &p); err == nil {
			return &p
		}
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}
	return generic
}
