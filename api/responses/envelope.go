package responses

// SuccessEnvelope wraps every 2xx body under "data".
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorBody is the public shape of a failed request. Field and Reason are
// lifted out of the details so clients can highlight the offending form input
// and tell the sale rejections apart without parsing Message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// formHints pulls the field and reason keys out of error details.
func formHints(details any) (field, reason string) {
	dm, ok := details.(map[string]any)
	if !ok {
		return "", ""
	}
	field, _ = dm["field"].(string)
	reason, _ = dm["reason"].(string)
	return field, reason
}
