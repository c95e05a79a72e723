package logger

import "strings"

// Field names whose values never appear in logs unmasked. Customer
// phone numbers identify real people, and IMEIs and payment transaction
// ids identify real devices and bank records.
var sensitiveKeys = []string{
	"phone",
	"imei",
	"transaction_id",
	"password",
	"secret",
	"token",
	"authorization",
}

// MaskPhone masks a customer phone number, preserving the last 4 digits.
func MaskPhone(value string) string {
	return maskLast4(strings.TrimSpace(value))
}

// MaskIMEI masks an IMEI, preserving the last 4 digits.
func MaskIMEI(value string) string {
	return maskLast4(strings.TrimSpace(value))
}

// MaskJSON returns a deep-copied map with sensitive fields masked.
func MaskJSON(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		if isSensitiveKey(key) {
			out[key] = maskValue(value)
			continue
		}
		out[key] = maskJSONValue(value)
	}
	return out
}

func maskJSONValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return MaskJSON(typed)
	case []any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, maskJSONValue(entry))
		}
		return items
	default:
		return value
	}
}

func maskValue(value any) any {
	switch typed := value.(type) {
	case string:
		return maskLast4(typed)
	case []byte:
		return maskLast4(string(typed))
	default:
		return "****"
	}
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, needle := range sensitiveKeys {
		if strings.Contains(key, needle) {
			return true
		}
	}
	return false
}

func maskLast4(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
