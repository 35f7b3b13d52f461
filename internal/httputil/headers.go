package httputil

import "net/http"

// JSONHeaders returns the headers sent with every listings API request.
// Setting Accept-Encoding by hand disables Go's transparent gzip, so
// ReadBody must be used on the response.
func JSONHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Accept-Encoding", "gzip, br")
	return h
}
