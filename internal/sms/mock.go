package sms

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MockGateway simulates a carrier for tests and local development.
// Sends succeed unless Err is set.
type MockGateway struct {
	Err  error
	Sent []MockSend
}

type MockSend struct {
	Body string
	To   string
	From string
}

func (m *MockGateway) Send(ctx context.Context, body, to, from string) (*Delivery, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Sent = append(m.Sent, MockSend{Body: body, To: to, From: from})
	d := &Delivery{Ref: uuid.NewString(), ProviderID: uuid.NewString(), Status: "queued"}
	logrus.WithFields(logrus.Fields{"to": to, "ref": d.Ref}).Info("mock sms sent")
	return d, nil
}
