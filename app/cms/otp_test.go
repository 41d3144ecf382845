package cms

import (
	"testing"
	"time"
)

func TestOTPGateDeliversCode(t *testing.T) {
	gate := NewOTPGate()

	ch, err := gate.Prepare()
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if !gate.Pending() {
		t.Error("gate should be pending after prepare")
	}

	if !gate.Submit("123456") {
		t.Error("submit should find a waiting login")
	}

	select {
	case code := <-ch:
		if code != "123456" {
			t.Errorf("expected code 123456, got %s", code)
		}
	case <-time.After(time.Second):
		t.Fatal("code was not delivered")
	}

	if gate.Pending() {
		t.Error("slot should be closed after submit")
	}
}

func TestOTPGateSingleSlot(t *testing.T) {
	gate := NewOTPGate()

	if _, err := gate.Prepare(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if _, err := gate.Prepare(); err != ErrOTPPending {
		t.Errorf("second prepare should fail with ErrOTPPending, got %v", err)
	}
}

func TestOTPGateSubmitWithoutLogin(t *testing.T) {
	gate := NewOTPGate()

	if gate.Submit("123456") {
		t.Error("submit with no waiting login should report false")
	}
}

func TestOTPGateCancelReopensSlot(t *testing.T) {
	gate := NewOTPGate()

	if _, err := gate.Prepare(); err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	gate.Cancel()

	if gate.Pending() {
		t.Error("cancel should close the slot")
	}
	if _, err := gate.Prepare(); err != nil {
		t.Errorf("prepare after cancel should succeed, got %v", err)
	}
}
