package models

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// SuccessResponse is the standard success envelope used by swagger.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
