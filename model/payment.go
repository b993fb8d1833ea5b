package model

import "encoding/json"

// PaymentInit is the body of POST /pay/init. Both fields are opaque blobs
// handed to the external payment widget as-is.
type PaymentInit struct {
	Auth       json.RawMessage `json:"auth"`
	PaymentObj json.RawMessage `json:"payment_obj"`
}
