package utils

import (
	"fmt"
	"time"
)

const midtransTimeLayout = "2006-01-02 15:04:05"

// Midtrans reports times as WIB wall clock without an offset.
var wibLocation = time.FixedZone("WIB", 7*60*60)

// ParseMidtransTime converts a Midtrans "2006-01-02 15:04:05" WIB timestamp.
// RFC 3339 timestamps carry their own offset and are accepted as well.
func ParseMidtransTime(wibTime string) (time.Time, error) {
	t, err := time.ParseInLocation(midtransTimeLayout, wibTime, wibLocation)
	if err == nil {
		return t, nil
	}

	if t, rfcErr := time.Parse(time.RFC3339, wibTime); rfcErr == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("error parsing time: %w", err)
}

// PaymentTime picks settlement time when present, else transaction time.
// A nil result means neither was reported.
func PaymentTime(settlementTime, transactionTime string) (*time.Time, error) {
	raw := settlementTime
	if raw == "" {
		raw = transactionTime
	}
	if raw == "" {
		return nil, nil
	}

	t, err := ParseMidtransTime(raw)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
