// Package ask relays natural-language questions about the catalog to an
// external completion API, grounding every answer in text-matched catalog
// rows so the model cannot invent books the shelf does not hold.
package ask

import (
	"fmt"
	"strings"

	"github.com/inkshelf/inkshelf/internal/catalog"
	"github.com/inkshelf/inkshelf/pkg/slice"
)

// NoMatchesPlaceholder replaces the context block when the question matches
// nothing. The completion call still proceeds: the model is told there are
// no matches rather than being handed an empty block it might ignore.
const NoMatchesPlaceholder = "No matching books found in the catalog."

// FallbackAnswer is returned when the completion API responds successfully
// but with empty content.
const FallbackAnswer = "I could not generate an answer."

// systemPrompt pins the model to the supplied context block.
const systemPrompt = "You are the assistant for a personal book catalog. " +
	"Answer questions using only the facts listed in the provided catalog context. " +
	"If the context does not contain enough information to answer, say so plainly. " +
	"Do not invent books, authors, or publication details."

// Request is the POST /ask body.
type Request struct {
	Question string `json:"question"`
}

// Response is the POST /ask success body: the generated answer plus the
// catalog rows the context block was built from.
type Response struct {
	Answer  string          `json:"answer"`
	Matches []*catalog.Book `json:"matches,omitempty"`
}

// ContextLine renders one book as a single-line textual fact:
//
//	"The Dispossessed" by Ursula K. Le Guin (1974), Harper & Row — Notes: first edition
//
// Absent parts are omitted rather than rendered empty.
func ContextLine(book *catalog.Book) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q", book.Title)

	if names := book.AuthorNames(); len(names) > 0 {
		b.WriteString(" by ")
		b.WriteString(strings.Join(names, ", "))
	}
	if book.PubYear != nil {
		fmt.Fprintf(&b, " (%d)", *book.PubYear)
	}
	if book.Publisher != nil && book.Publisher.Name != "" {
		b.WriteString(", ")
		b.WriteString(book.Publisher.Name)
	}
	if book.Notes != nil && strings.TrimSpace(*book.Notes) != "" {
		b.WriteString(" — Notes: ")
		b.WriteString(strings.TrimSpace(*book.Notes))
	}

	return b.String()
}

// BuildContext joins the matched rows into the context block handed to the
// model, or the placeholder when nothing matched.
func BuildContext(books []*catalog.Book) string {
	if len(books) == 0 {
		return NoMatchesPlaceholder
	}

	return strings.Join(slice.Map(books, ContextLine), "\n")
}

// userPrompt packages the question with its context block as the single user
// message.
func userPrompt(question, contextBlock string) string {
	return "Catalog context:\n" + contextBlock + "\n\nQuestion: " + question
}
