package response

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Success:    true,
		Data:       data,
	}
}

// Page wraps one page of results with its pagination metadata
func Page(statusCode int, data, meta interface{}) Response {
	resp := Success(statusCode, data)
	resp.Meta = meta
	return resp
}

// Error returns a standard error response wrapping the error message.
// Message repeats it so clients of the upload form can read a single field.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Success:    false,
		Message:    err,
		Error:      err,
	}
}

// WithMessage attaches a human readable summary.
func (r Response) WithMessage(msg string) Response {
	r.Message = msg
	return r
}
