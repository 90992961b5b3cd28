package activity

// RedactionMarker replaces sensitive values before persistence.
const RedactionMarker = "***REDACTED***"

// defaultSensitiveFields are redacted when no deployment-specific list is
// configured.
var defaultSensitiveFields = []string{
	"password",
	"password_confirmation",
	"token",
	"api_token",
	"remember_token",
}

// Sanitizer redacts sensitive top-level fields from captured request payloads.
type Sanitizer struct {
	sensitive map[string]struct{}
}

// NewSanitizer builds a sanitizer for the given field names. An empty list
// selects the default set.
func NewSanitizer(fields []string) *Sanitizer {
	if len(fields) == 0 {
		fields = defaultSensitiveFields
	}
	sensitive := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		sensitive[f] = struct{}{}
	}
	return &Sanitizer{sensitive: sensitive}
}

// Sanitize returns a copy of payload with every sensitive top-level key's
// value replaced by RedactionMarker. Keys absent from the input stay absent;
// nothing is invented. The input map is never modified.
func (s *Sanitizer) Sanitize(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if _, ok := s.sensitive[k]; ok {
			out[k] = RedactionMarker
			continue
		}
		out[k] = v
	}
	return out
}
