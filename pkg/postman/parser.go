package postman

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput marks input that is not valid JSON at all. Structurally
// invalid collections get a *SchemaError instead.
var ErrMalformedInput = errors.New("input is not valid JSON")

// SchemaError reports a document that is valid JSON but not a valid
// collection.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid collection: %s", e.Detail)
}

// Options controls parser behavior.
type Options struct {
	strict bool
}

// Option configures Parse.
type Option func(*Options)

// Strict makes any malformed item node fail the whole parse. The default is
// lenient: bad nodes are skipped and recorded in Collection.Warnings.
func Strict() Option {
	return func(o *Options) { o.strict = true }
}

// Wire types mirror the Postman v2.1 document shape. They exist only for
// decoding; the normalized model above is what the rest of the system sees.

type rawCollection struct {
	Info rawInfo   `json:"info"`
	Item []rawItem `json:"item"`
}

type rawInfo struct {
	Name string `json:"name"`
}

type rawItem struct {
	Name    string      `json:"name"`
	Request *rawRequest `json:"request"`
	Item    []rawItem   `json:"item"`
}

type rawRequest struct {
	Method string      `json:"method"`
	URL    rawURL      `json:"url"`
	Header []rawHeader `json:"header"`
	Body   *rawBody    `json:"body"`
	Auth   *rawAuth    `json:"auth"`
}

type rawHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type rawBody struct {
	Mode string `json:"mode"`
	Raw  string `json:"raw"`
}

type rawAuth struct {
	Type string `json:"type"`
}

// rawURL accepts both forms Postman emits: a plain string and an object with
// a "raw" field.
type rawURL struct {
	Raw string
}

func (u *rawURL) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		u.Raw = s
		return nil
	}

	var obj struct {
		Raw string `json:"raw"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("url must be a string or an object with a raw field")
	}
	u.Raw = obj.Raw
	return nil
}

// Parse validates and normalizes a raw collection document.
//
// It fails with ErrMalformedInput when the bytes are not JSON and with a
// *SchemaError when the document lacks the required top-level shape. Item
// nodes that are neither folders nor requests are skipped with a warning in
// lenient mode (the default) or fail the parse in strict mode.
func Parse(raw []byte, opts ...Option) (*Collection, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("parse collection: %w", ErrMalformedInput)
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc rawCollection
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &SchemaError{Detail: err.Error()}
	}

	col := &Collection{Name: strings.TrimSpace(doc.Info.Name)}
	if col.Name == "" {
		col.Name = DefaultCollectionName
	}

	items, err := normalizeItems(doc.Item, nil, &col.Warnings, o.strict)
	if err != nil {
		return nil, err
	}
	col.Items = items
	return col, nil
}

// normalizeItems converts wire items into model items, discriminating folders
// from requests. path carries the folder names leading to these items and is
// used only for warning messages.
func normalizeItems(raw []rawItem, path []string, warnings *[]string, strict bool) ([]Item, error) {
	items := make([]Item, 0, len(raw))
	for _, ri := range raw {
		switch {
		case ri.Item != nil:
			children, err := normalizeItems(ri.Item, append(path, ri.Name), warnings, strict)
			if err != nil {
				return nil, err
			}
			items = append(items, Item{Name: ri.Name, Items: children})

		case ri.Request != nil:
			items = append(items, Item{Name: ri.Name, Request: normalizeRequest(ri.Request)})

		default:
			detail := fmt.Sprintf("item %q has neither a request nor nested items", itemLabel(path, ri.Name))
			if strict {
				return nil, &SchemaError{Detail: detail}
			}
			*warnings = append(*warnings, detail+", skipped")
		}
	}
	return items, nil
}

func normalizeRequest(rr *rawRequest) *Request {
	req := &Request{
		Method: strings.ToUpper(strings.TrimSpace(rr.Method)),
		URL:    rr.URL.Raw,
	}
	if req.Method == "" {
		req.Method = "GET"
	}
	for _, h := range rr.Header {
		req.Headers = append(req.Headers, Header(h))
	}
	if rr.Body != nil {
		req.Body = rr.Body.Raw
	}
	if rr.Auth != nil && rr.Auth.Type != "" {
		req.Auth = &Auth{Type: rr.Auth.Type}
	}
	return req
}

func itemLabel(path []string, name string) string {
	if name == "" {
		name = "(unnamed)"
	}
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, "/") + "/" + name
}
