// Package sms relays message bodies to phones through an external
// carrier gateway. Relays are fire and forget: the result is reported
// to the caller but never affects stored messages.
package sms

import "context"

// Delivery is the gateway's acknowledgement of a send.
type Delivery struct {
	Ref        string `json:"ref"`         // client-side correlation id
	ProviderID string `json:"provider_id"` // id assigned by the carrier
	Status     string `json:"status"`
}

type Gateway interface {
	Send(ctx context.Context, body, to, from string) (*Delivery, error)
}
