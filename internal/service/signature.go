package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// GenerateSignature computes the Midtrans notification signature:
// hex(SHA512(order_id + status_code + gross_amount + server_key)).
func GenerateSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func signatureMatches(expected, received string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}
