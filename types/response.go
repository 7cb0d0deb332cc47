package types

type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	// Retryable marks failures of an external collaborator.
	Retryable bool `json:"retryable,omitempty"`
	// Redirect is the route a browser should fall back to.
	Redirect string `json:"redirect,omitempty"`
}
