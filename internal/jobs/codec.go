package jobs

import (
	"encoding/json"
	"fmt"
	"strings"
)

func EncodePayload(t JobType, payload any) ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}

	switch t {
	case JobInventoryExportEmail:
		switch payload.(type) {
		case InventoryExportEmailPayload, *InventoryExportEmailPayload:
		default:
			return nil, ErrPayloadTypeMismatch
		}
	}

	b, err := json.Marshal(payload)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	return b, nil
}

// DecodePayload unmarshals raw job payload bytes into the typed payload
// struct for the given type.
func DecodePayload(t JobType, raw []byte) (any, error) {
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}
	if len(raw) == 0 {
		return nil, ErrInvalidJobPayload
	}

	switch t {
	case JobInventoryExportEmail:
		var p InventoryExportEmailPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	default:
		return nil, ErrInvalidJobType
	}
}

// ValidatePayload performs minimal semantic validation on decoded payloads.
func ValidatePayload(t JobType, payload any) error {
	if !t.IsValid() {
		return ErrInvalidJobType
	}

	switch t {
	case JobInventoryExportEmail:
		var p InventoryExportEmailPayload
		switch v := payload.(type) {
		case InventoryExportEmailPayload:
			p = v
		case *InventoryExportEmailPayload:
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}

		if len(p.ToAddresses) == 0 {
			return ErrInvalidJobPayload
		}

		for _, addr := range p.ToAddresses {
			if strings.TrimSpace(addr) == "" {
				return ErrInvalidJobPayload
			}
		}
		return nil

	default:
		return ErrInvalidJobType
	}
}
