package types

// SuccessEnvelope is the uniform body for successful responses.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Result  any    `json:"result,omitempty"`
}

// ErrorEnvelope is the uniform body for failed responses. Stack is only
// populated outside production.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Msg     any    `json:"msg"`
	Stack   string `json:"stack,omitempty"`
}
