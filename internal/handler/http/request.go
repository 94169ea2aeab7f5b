package http

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
)

const maxMultipartMemory = 10 << 20 // 10MB

var errMissingData = errors.New("field 'data' is required")

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// decodeRequest reads the JSON payload of r into dst. Multipart requests carry
// it in the "data" form field, next to the uploaded files.
func decodeRequest(r *http.Request, dst interface{}) error {
	if !isMultipart(r) {
		return json.NewDecoder(r.Body).Decode(dst)
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return err
	}

	data := r.FormValue("data")
	if data == "" {
		return errMissingData
	}
	return json.Unmarshal([]byte(data), dst)
}

// formFile returns the uploaded file for field, or nils when the request has
// none. The caller closes a non-nil file.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	if !isMultipart(r) {
		return nil, nil, nil
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return file, header, nil
}
