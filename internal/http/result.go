package httpapi

// Result is the JSON envelope every endpoint responds with.
// - code: 2000 success, -1 error
// - type: 'success' | 'error'
// - message: user-facing text (Spanish where the dashboards surface it)
// - result: payload
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultSessionExpired pairs with HTTP 401 so clients can force re-login.
	ResultSessionExpired = 60401
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

func SessionExpired() Result[any] {
	return Result[any]{Code: ResultSessionExpired, Type: "error", Message: "session expired", Result: nil}
}
