package objects

// QueryRequest is the body of POST /v1/query.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// QueryResponse carries the authorized, possibly rewritten query text.
type QueryResponse struct {
	Query     string   `json:"query"`
	Rewritten bool     `json:"rewritten"`
	Tables    []string `json:"tables"`
}
