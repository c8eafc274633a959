package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/fekuna/omnipos-storefront-service/pkg/errx"
	"github.com/fekuna/omnipos-storefront-service/pkg/i18n"
)

const maxBodyBytes = 1 << 20

var translator atomic.Pointer[i18n.Translator]

// SetTranslator installs the translator used for error titles.
func SetTranslator(tr *i18n.Translator) {
	translator.Store(tr)
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

type ListResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func OK(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

func List(w http.ResponseWriter, data interface{}, total, page, pageSize int) {
	WriteJSON(w, http.StatusOK, ListResponse{
		Success:  true,
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// WriteError renders err as an ErrorResponse. Internal errors never leak
// their cause to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := errx.From(err)
	lang := ""
	if r != nil {
		lang = r.Header.Get("Accept-Language")
	}
	title := translator.Load().Localize(appErr.Code, appErr.Message, lang)

	WriteJSON(w, appErr.Status, ErrorResponse{
		Success: false,
		Error:   appErr.Code,
		Title:   title,
		Message: appErr.Message,
	})
}

func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errx.BadRequest(err, "could not read request body")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return errx.BadRequest(errors.New("empty body"), "empty request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errx.BadRequest(err, "invalid JSON payload")
	}
	return nil
}

// IntParam reads a query parameter clamped to [min, max].
func IntParam(r *http.Request, key string, def, min, max int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// Page returns page and page_size query parameters with storefront defaults.
func Page(r *http.Request) (int, int) {
	return IntParam(r, "page", 1, 1, 10000), IntParam(r, "page_size", 20, 1, 100)
}
