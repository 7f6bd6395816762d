package match

// HTTPResponse is the desired shape of the HTTP response. Can include any number
// of body and JSON matchers.
type HTTPResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []Data
	JSON       []JSON
}
