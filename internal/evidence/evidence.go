// Package evidence attaches supporting material to answers: an
// encyclopedia summary for multiple-choice questions, recent news
// links otherwise.
package evidence

// Source types as they appear on the wire.
const (
	TypeWikipedia = "wikipedia"
	TypeNews      = "itmo_news"
)

// MaxSources caps the evidence list of a response.
const MaxSources = 3

// Source is one piece of supporting evidence. Exactly one of Content
// (wikipedia) or Link (itmo_news) is set, depending on Type.
type Source struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	Link    string `json:"link,omitempty"`
}
