package handler

type Response struct {
	Status   string      `json:"status"`
	Message  string      `json:"message,omitempty"`
	Data     interface{} `json:"data,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// NewRedirectResponse pairs an auth failure with the surface the client
// should navigate to instead of an error detail.
func NewRedirectResponse(message, redirect string) *Response {
	return &Response{
		Status:   "error",
		Message:  message,
		Redirect: redirect,
	}
}
