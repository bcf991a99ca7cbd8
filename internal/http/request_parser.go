// Package http provides the HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request
// data. Handlers accept both JSON and form-encoded bodies through a single
// parser so clients and the dashboard share one code path.

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ingest"
)

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]interface{}
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}

	p.body, p.err = io.ReadAll(r.Body)
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	// Try JSON first if content looks like JSON
	if p.body[0] == '{' || p.body[0] == '[' {
		p.jsonData = make(map[string]interface{})
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a sanitized string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return strings.TrimSpace(sanitizeInput(stringValue(val)))
		}
	}
	if p.formData != nil {
		return strings.TrimSpace(sanitizeInput(p.formData.Get(key)))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// stringValue converts an interface{} to string.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parseExpenseRequest builds an expense record from a request body.
// The date defaults to today and a missing description gets the ingestion
// placeholder; the category, when blank, is filled in by the service layer.
func parseExpenseRequest(r *http.Request) (core.Expense, *ResponseBuilder) {
	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		return core.Expense{}, BadRequestError("invalid request body")
	}

	amountStr := parser.Get("amount")
	if amountStr == "" {
		return core.Expense{}, UnprocessableEntityError("amount is required")
	}
	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		return core.Expense{}, UnprocessableEntityError("invalid amount")
	}

	desc := parser.Get("description")
	if desc == "" {
		desc = ingest.DefaultDescription
	}

	date := core.Date{Time: time.Now()}
	if v := parser.Get("date"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			return core.Expense{}, UnprocessableEntityError("invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	return core.Expense{
		Date:        date,
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Category:    parser.Get("category"),
	}, nil
}
