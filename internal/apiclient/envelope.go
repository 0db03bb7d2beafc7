package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Unwrap decodes a response that is either {"data": T, ...} or a bare T.
// The envelope is used only when its data member is present and truthy;
// anything else decodes the whole body. An empty body yields the zero T.
func Unwrap[T any](resp *Response) (T, error) {
	var v T
	if resp.Binary {
		return v, ErrBinaryBody
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return v, nil
	}

	if res := gjson.ParseBytes(body); res.IsObject() {
		if data := res.Get("data"); data.Exists() && truthy(data) {
			body = []byte(data.Raw)
		}
	}

	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode %s response: %w", resp.Client, err)
	}
	return v, nil
}

// truthy follows the backends' loose notion of "has data"
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}
