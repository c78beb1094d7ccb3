// Copyright (c) 2025 Anchor
// Licensed under the MIT License. See LICENSE file in the project root for details.

package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error codes reported by the Anchor server. InvalidSession is the only code
// given special handling by the SDK: it triggers the single refresh-and-retry
// attempt in the auth state manager.
const (
	ErrorCodeInvalidSession = "InvalidSession"
)

// RequestError is a non-2xx response from the Anchor server, surfaced
// verbatim to SDK callers.
type RequestError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *RequestError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("anchor request failed: %d %s: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("anchor request failed: %d: %s", e.StatusCode, e.Message)
}

// IsInvalidSession reports whether err is a server response indicating the
// bearer token is expired or revoked.
func IsInvalidSession(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.ErrorCode == ErrorCodeInvalidSession
}

// decodeError builds a RequestError from a non-2xx response body. The server
// reports errors as {"error": "...", "error_code": "..."}; bodies that are
// not JSON are carried through as the raw message.
func decodeError(resp *http.Response) *RequestError {
	re := &RequestError{StatusCode: resp.StatusCode}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var doc struct {
		Error     string `json:"error"`
		ErrorCode string `json:"error_code"`
	}
	if err := json.Unmarshal(b, &doc); err == nil && (doc.Error != "" || doc.ErrorCode != "") {
		re.ErrorCode = doc.ErrorCode
		re.Message = doc.Error
		return re
	}

	re.Message = strings.TrimSpace(string(b))
	if re.Message == "" {
		re.Message = http.StatusText(resp.StatusCode)
	}
	return re
}
