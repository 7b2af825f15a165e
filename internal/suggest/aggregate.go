package suggest

import (
	"sort"

	"github.com/inkshelf/inkshelf/internal/catalog"
)

// Per-facet result caps. The dropdown shows at most one screenful.
const (
	maxAuthors    = 6
	maxTitles     = 8
	maxSeries     = 4
	maxPublishers = 4
)

// titleWeight biases the combined title score toward the title itself over
// its first author.
const titleWeight = 1.2

// Aggregate groups the deduplicated candidate set into ranked, capped
// suggestion lists and concatenates them in the fixed facet order:
// authors, titles, series, publishers.
//
// Pure: same candidates + same query always produce identical output
// (every ranking carries an explicit final tie-break).
func Aggregate(query string, candidates []*catalog.Book) []Suggestion {
	var out []Suggestion
	out = append(out, authorSuggestions(query, candidates)...)
	out = append(out, titleSuggestions(query, candidates)...)
	out = append(out, seriesSuggestions(query, candidates)...)
	out = append(out, publisherSuggestions(query, candidates)...)
	return out
}

type scoredAuthor struct {
	entry AuthorSuggestion
	score int
}

func authorSuggestions(query string, candidates []*catalog.Book) []Suggestion {
	type accum struct {
		alt   string
		count int
	}

	// One candidate name per (book, author-contributor) pair, accumulated
	// per distinct display name. The first-seen differing sort name becomes
	// the alternate form.
	byName := make(map[string]*accum)
	var order []string

	for _, book := range candidates {
		for _, c := range book.Authors() {
			name := c.Person.Name()
			if name == "" {
				continue
			}

			entry, ok := byName[name]
			if !ok {
				entry = &accum{}
				byName[name] = entry
				order = append(order, name)
			}
			entry.count++

			if entry.alt == "" && c.Person.SortName != nil && *c.Person.SortName != name {
				entry.alt = *c.Person.SortName
			}
		}
	}

	var scored []scoredAuthor
	for _, name := range order {
		entry := byName[name]

		nameScore := Score(query, name)
		altScore := Score(query, entry.alt)
		best := nameScore
		if altScore > best {
			best = altScore
		}
		if best == 0 {
			continue
		}

		scored = append(scored, scoredAuthor{
			entry: AuthorSuggestion{
				Name:    name,
				Alt:     entry.alt,
				Count:   entry.count,
				ShowAlt: altScore > nameScore,
			},
			score: best,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].entry.Count != scored[j].entry.Count {
			return scored[i].entry.Count > scored[j].entry.Count
		}
		return scored[i].entry.Name < scored[j].entry.Name
	})

	if len(scored) > maxAuthors {
		scored = scored[:maxAuthors]
	}

	out := make([]Suggestion, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.entry)
	}
	return out
}

type scoredTitle struct {
	entry TitleSuggestion
	score float64
}

func titleSuggestions(query string, candidates []*catalog.Book) []Suggestion {
	var scored []scoredTitle

	for _, book := range candidates {
		names := book.AuthorNames()
		firstAuthor := ""
		if len(names) > 0 {
			firstAuthor = names[0]
		}

		combined := float64(Score(query, book.Title))*titleWeight + float64(Score(query, firstAuthor))
		if combined == 0 {
			continue
		}

		scored = append(scored, scoredTitle{
			entry: TitleSuggestion{
				Title:  book.Title,
				BookID: book.ID,
				Detail: TitleDetail(names, book.PubYear),
			},
			score: combined,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].entry.BookID < scored[j].entry.BookID
	})

	if len(scored) > maxTitles {
		scored = scored[:maxTitles]
	}

	out := make([]Suggestion, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.entry)
	}
	return out
}

type valueCount struct {
	Value string
	Count int
}

// countedValues accumulates occurrence counts per distinct value, scores
// each with a small count nudge, and returns the ranked survivors. Series
// and publishers share this policy.
func countedValues(query string, values []string, limit int) []valueCount {
	counts := make(map[string]int)
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}

	type scoredValue struct {
		value string
		count int
		score float64
	}

	var scored []scoredValue
	for value, count := range counts {
		base := Score(query, value)
		if base == 0 {
			continue
		}
		// The count acts as a tie-breaking nudge between equal match tiers,
		// never as a primary signal.
		scored = append(scored, scoredValue{
			value: value,
			count: count,
			score: float64(base) + float64(count)/10,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].value < scored[j].value
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]valueCount, 0, len(scored))
	for _, s := range scored {
		out = append(out, valueCount{Value: s.value, Count: s.count})
	}
	return out
}

func seriesSuggestions(query string, candidates []*catalog.Book) []Suggestion {
	var values []string
	for _, book := range candidates {
		if book.Series != nil {
			values = append(values, *book.Series)
		}
	}

	var out []Suggestion
	for _, v := range countedValues(query, values, maxSeries) {
		out = append(out, SeriesSuggestion{Name: v.Value, Count: v.Count})
	}
	return out
}

func publisherSuggestions(query string, candidates []*catalog.Book) []Suggestion {
	var values []string
	for _, book := range candidates {
		if book.Publisher != nil {
			values = append(values, book.Publisher.Name)
		}
	}

	var out []Suggestion
	for _, v := range countedValues(query, values, maxPublishers) {
		out = append(out, PublisherSuggestion{Name: v.Value, Count: v.Count})
	}
	return out
}
