package amqp

import "testing"

func TestPaymentEventMessageRoundTrip(t *testing.T) {
	msg := NewPaymentEventMessage("created", "user_1", "TRX-1")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := PaymentEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Op != "created" || got.UserID != "user_1" || got.PaymentID != "TRX-1" {
		t.Fatalf("unexpected message: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
}

func TestPaymentEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := PaymentEventMessageFromJSON([]byte("{broken")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
