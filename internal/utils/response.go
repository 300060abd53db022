package utils

import "github.com/gin-gonic/gin"

// ErrorBody is the uniform error envelope consumed by the admin SPA.
// Every failure, regardless of cause, is rendered as {"error": "<message>"}.
type ErrorBody struct {
	Error string `json:"error"`
}

// Page is the envelope for paginated listings.
type Page struct {
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  interface{} `json:"data"`
}

// Message is the envelope for mutation acknowledgements that return no entity.
type Message struct {
	Message string `json:"message"`
}

// Error writes the uniform error envelope with the given HTTP status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

// Paginated writes a paginated listing response.
func Paginated(c *gin.Context, total, page, limit int, data interface{}) {
	if data == nil {
		data = []struct{}{}
	}
	c.JSON(200, Page{Total: total, Page: page, Limit: limit, Data: data})
}

// OK writes an acknowledgement message with status 200.
func OK(c *gin.Context, message string) {
	c.JSON(200, Message{Message: message})
}
