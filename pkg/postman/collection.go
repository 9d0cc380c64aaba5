// Package postman provides the typed model for Postman v2.1 collections,
// the parser that normalizes raw JSON documents into it, and the flattener
// that turns the folder tree into an ordered request list.
package postman

// DefaultCollectionName is used when the document carries no info.name.
const DefaultCollectionName = "postman-collection"

// Collection is the normalized in-memory form of a Postman collection.
type Collection struct {
	Name string
	// Items holds the top-level folders and requests in document order.
	Items []Item
	// Warnings records nodes skipped during lenient parsing.
	Warnings []string
}

// Item is one node of the collection tree: a folder or a request.
// Folders have a non-nil Items slice; requests have a non-nil Request.
type Item struct {
	Name    string
	Request *Request
	Items   []Item
}

// IsFolder reports whether this item owns nested items rather than a request.
func (it Item) IsFolder() bool {
	return it.Request == nil
}

// Request describes one HTTP call from the collection. Variable placeholders
// ({{var}}) in URL, headers, and body are preserved verbatim; resolving them
// is the consumer's job.
type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    string
	Auth    *Auth
}

// Header is one request header pair. Duplicate names are allowed and order
// is preserved.
type Header struct {
	Key   string
	Value string
}

// Auth is the request's authentication descriptor. Only the scheme type is
// carried; token acquisition is out of scope.
type Auth struct {
	Type string
}

// FlattenedRequest pairs a request with its folder path, giving every
// generated feature file a stable naming context.
type FlattenedRequest struct {
	// Name is the request item's display name.
	Name string
	// Folders is the folder path from the collection root to the request,
	// outermost first.
	Folders []string
	Request Request
}
