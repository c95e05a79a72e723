package logger

import "testing"

func TestMaskPhonePreservesLast4(t *testing.T) {
	if got := MaskPhone("9876543210"); got != "******3210" {
		t.Fatalf("MaskPhone = %q", got)
	}
	if got := MaskPhone("123"); got != "****" {
		t.Fatalf("short phone should mask fully, got %q", got)
	}
	if got := MaskPhone(""); got != "" {
		t.Fatalf("empty phone should stay empty, got %q", got)
	}
}

func TestMaskJSONMasksSensitiveKeys(t *testing.T) {
	input := map[string]any{
		"name":  "Asha",
		"phone": "9876543210",
		"nested": map[string]any{
			"imei":           "356938035643809",
			"transaction_id": "TXN12345678",
			"amount":         "15000.00",
		},
	}

	out := MaskJSON(input)

	if out["name"] != "Asha" {
		t.Fatalf("name should pass through, got %v", out["name"])
	}
	if out["phone"] != "******3210" {
		t.Fatalf("phone should be masked, got %v", out["phone"])
	}
	nested := out["nested"].(map[string]any)
	if nested["imei"] != "***********3809" {
		t.Fatalf("imei should be masked, got %v", nested["imei"])
	}
	if nested["amount"] != "15000.00" {
		t.Fatalf("amount should pass through, got %v", nested["amount"])
	}
	if input["phone"] != "9876543210" {
		t.Fatalf("input must not be mutated")
	}
}
