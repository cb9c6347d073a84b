package models

// Metadata is the best-effort statement information derived from the
// converter's output. Fields degrade to sentinel values, never to errors.
type Metadata struct {
	Month        string
	Bank         string
	Transactions int
}

// ConvertResponse is the JSON response from the /convert endpoint.
type ConvertResponse struct {
	Success              bool   `json:"success"`
	Message              string `json:"message,omitempty"`
	Error                string `json:"error,omitempty"`
	Output               string `json:"output,omitempty"`
	DownloadURL          string `json:"downloadUrl,omitempty"`
	StatementMonth       string `json:"statementMonth,omitempty"`
	StatementBank        string `json:"statementBank,omitempty"`
	NumberOfTransactions int    `json:"numberOfTransactions"`
}
