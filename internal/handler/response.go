package handler

// Response is the common envelope for structured replies. The lookup
// endpoint's simulated-outage path deliberately bypasses it and returns a
// raw body, so collaborators handle unstructured failures too.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
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
