// Package httpx holds the JSON envelope, problem responses and request
// decoding shared by every handler.
package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ProblemDetail is the RFC7807-style error body.
type ProblemDetail struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type envelope struct {
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// JSON writes v as-is with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Data writes {"data": v}.
func Data(w http.ResponseWriter, status int, v any) {
	JSON(w, status, envelope{Data: v})
}

// List writes {"data": items, "pagination": {...}}.
func List(w http.ResponseWriter, items any, page, limit, total int) {
	JSON(w, http.StatusOK, envelope{
		Data:       items,
		Pagination: &Pagination{Page: page, Limit: limit, Total: total},
	})
}

func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemDetail{Title: title, Status: status, Detail: detail})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
