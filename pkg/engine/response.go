package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// response is a fully formed HTTP response waiting to be written. The
// body may stream (proxy responses) or be nil (status-only responses).
type response struct {
	status int
	header http.Header
	body   io.ReadCloser
}

// statusResponse builds an empty response carrying only a status code.
func statusResponse(status int) *response {
	return &response{
		status: status,
		header: http.Header{},
	}
}

// jsonResponse builds an application/json response from already
// serialized bytes.
func jsonResponse(status int, data []byte) *response {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Content-Length", fmt.Sprintf("%d", len(data)))
	return &response{
		status: status,
		header: header,
		body:   io.NopCloser(bytes.NewReader(data)),
	}
}

// jsonValueResponse serializes value as the JSON body of a response.
func jsonValueResponse(status int, value any) *response {
	data, err := json.Marshal(value)
	if err != nil {
		// Config-supplied values are plain YAML/JSON data; this cannot
		// fail for them.
		return statusResponse(http.StatusInternalServerError)
	}
	return jsonResponse(status, data)
}

// write sends the response to the client and closes the body.
func (resp *response) write(w http.ResponseWriter) {
	for key, values := range resp.header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.status)
	if resp.body != nil {
		_, _ = io.Copy(w, resp.body)
		_ = resp.body.Close()
	}
}

// mergeHeaders copies the route's configured extra headers into the
// response, overwriting on collision.
func (resp *response) mergeHeaders(extra http.Header) {
	for key, values := range extra {
		resp.header.Del(key)
		for _, value := range values {
			resp.header.Add(key, value)
		}
	}
}
