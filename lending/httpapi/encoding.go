package httpapi

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const maxBodyBytes = 1 << 20

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = jsonAPI.NewEncoder(w).Encode(body)
}

// decodeAndValidate reads a JSON body into dst and runs the validate tags on it.
func (a *API) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := jsonAPI.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return core.InvalidInput("body", err.Error())
	}

	if err := a.validate.Struct(dst); err != nil {
		return validationError(err)
	}

	return nil
}

// intParam returns 0 if the parameter is missing.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.InvalidInput(name, "must be an integer")
	}

	return value, nil
}

// boolParam returns nil if the parameter is missing.
func boolParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, core.InvalidInput(name, "must be true or false")
	}

	return &value, nil
}
