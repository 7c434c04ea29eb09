package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
)

// decodeBody reads a single JSON object from r into dst and validates it.
// The returned error message is safe to show to the client.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		if msg, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return fmt.Errorf("unknown field %s", msg)
		}
		return errors.New("request body is not valid JSON")
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON object")
	}

	return validation.Struct(dst)
}
