package httpdto

// ErrorResponse is the body of every non-2xx answer. Detail is a string for
// most errors and a []ValidationErrorItem for rejected payloads.
type ErrorResponse struct {
	Detail any    `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// ValidationErrorItem describes one rejected field.
type ValidationErrorItem struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func NewErrorResponse(detail any, code string) ErrorResponse {
	return ErrorResponse{
		Detail: detail,
		Code:   code,
	}
}

type StatusResponse struct {
	Status string `json:"status"`
}

type WelcomeResponse struct {
	Message string `json:"message"`
}
