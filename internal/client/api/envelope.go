package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ngcs-mobile/courtclient/internal/common"
)

type envelope struct {
	D json.RawMessage `json:"d"`
}

var htmlMarkers = [][]byte{[]byte("<!doctype"), []byte("<html")}

// isHTMLDocument reports whether body starts with an HTML document marker,
// the signature of a misconfigured endpoint answering with markup instead of
// the expected envelope.
func isHTMLDocument(body []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 64 {
		head = head[:64]
	}
	for _, marker := range htmlMarkers {
		if bytes.HasPrefix(head, marker) {
			return true
		}
	}
	return false
}

// decodeEnvelope extracts the payload from the {d: ...} wrapper. A body that
// is itself a JSON-encoded string is parsed twice, a quirk of the legacy
// serializer. Returns the raw payload under "d".
func decodeEnvelope(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)

	if isHTMLDocument(trimmed) {
		return nil, common.ErrConfigFault
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrBadEnvelope, err)
		}
		trimmed = bytes.TrimSpace([]byte(inner))
		if isHTMLDocument(trimmed) {
			return nil, common.ErrConfigFault
		}
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBadEnvelope, err)
	}
	if env.D == nil {
		return nil, fmt.Errorf("%w: missing d field", common.ErrBadEnvelope)
	}
	return env.D, nil
}
