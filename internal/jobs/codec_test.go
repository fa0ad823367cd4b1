package jobs

import "testing"

func TestEncodeDecode_InventoryExportEmail(t *testing.T) {
	payload := InventoryExportEmailPayload{
		EnterpriseNIT: "1234567890-1",
		ToAddresses:   []string{"owner@example.com"},
		RequestedBy:   "admin@example.com",
	}

	b, err := EncodePayload(JobInventoryExportEmail, payload)
	if err != nil {
		t.Fatalf("EncodePayload error: %v", err)
	}

	decoded, err := DecodePayload(JobInventoryExportEmail, b)
	if err != nil {
		t.Fatalf("DecodePayload error: %v", err)
	}

	p, ok := decoded.(InventoryExportEmailPayload)
	if !ok {
		t.Fatalf("expected InventoryExportEmailPayload, got %T", decoded)
	}

	if p.EnterpriseNIT != payload.EnterpriseNIT {
		t.Fatalf("expected nit %s, got %s", payload.EnterpriseNIT, p.EnterpriseNIT)
	}

	if len(p.ToAddresses) != 1 || p.ToAddresses[0] != "owner@example.com" {
		t.Fatalf("recipient list did not round trip: %v", p.ToAddresses)
	}
}

func TestEncodePayload_TypeMismatch(t *testing.T) {
	_, err := EncodePayload(JobInventoryExportEmail, struct{ X int }{X: 1})
	if err != ErrPayloadTypeMismatch {
		t.Fatalf("expected ErrPayloadTypeMismatch, got %v", err)
	}
}

func TestEncodePayload_UnknownType(t *testing.T) {
	_, err := EncodePayload(JobType("bogus"), InventoryExportEmailPayload{})
	if err != ErrInvalidJobType {
		t.Fatalf("expected ErrInvalidJobType, got %v", err)
	}
}

func TestDecodePayload_EmptyAndMalformed(t *testing.T) {
	if _, err := DecodePayload(JobInventoryExportEmail, nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}

	if _, err := DecodePayload(JobInventoryExportEmail, []byte("{not-json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestValidatePayload_Recipients(t *testing.T) {
	err := ValidatePayload(JobInventoryExportEmail, InventoryExportEmailPayload{})
	if err == nil {
		t.Fatalf("expected error for missing recipients")
	}

	err = ValidatePayload(JobInventoryExportEmail, InventoryExportEmailPayload{ToAddresses: []string{"  "}})
	if err == nil {
		t.Fatalf("expected error for blank recipient")
	}

	err = ValidatePayload(JobInventoryExportEmail, &InventoryExportEmailPayload{ToAddresses: []string{"a@b.com"}})
	if err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}
