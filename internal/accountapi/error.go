package accountapi

import "fmt"

// maxErrorBody caps how much of a failed response body is kept for
// diagnostics.
const maxErrorBody = 200

// APIError is a non-2xx answer from the account service. Body is the raw
// response text truncated to maxErrorBody characters.
type APIError struct {
	Operation string
	Status    int
	Body      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed %d: %s", e.Operation, e.Status, e.Body)
}

func truncateBody(body []byte) string {
	s := string(body)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
