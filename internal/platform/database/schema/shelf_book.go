package schema

// BookTable represents the 'shelf.book' table
type BookTable struct {
	Table       string
	ID          string
	Title       string
	SortTitle   string
	PubYear     string
	Series      string
	WorkType    string
	Tier        string
	Signed      string
	Notes       string
	PublisherID string
	CreatedAt   string
}

// Book is the schema definition for shelf.book
var Book = BookTable{
	Table:       "shelf.book",
	ID:          "id",
	Title:       "title",
	SortTitle:   "sorttitle",
	PubYear:     "pubyear",
	Series:      "series",
	WorkType:    "worktype",
	Tier:        "tier",
	Signed:      "signed",
	Notes:       "notes",
	PublisherID: "publisherid",
	CreatedAt:   "createdat",
}

func (t BookTable) Columns() []string {
	return []string{t.ID, t.Title, t.SortTitle, t.PubYear, t.Series, t.WorkType, t.Tier, t.Signed, t.Notes, t.PublisherID, t.CreatedAt}
}
