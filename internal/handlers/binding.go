package handlers

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
)

// BindNestedOrFlat decodes the request body into obj. Front-office clients
// send either {"<key>": {...}} or the bare object; both are accepted. When
// key is present its value must decode into obj.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(bodyBytes, &envelope); err == nil {
		if inner, ok := envelope[key]; ok {
			return json.Unmarshal(inner, obj)
		}
	}

	return json.Unmarshal(bodyBytes, obj)
}
