package schema

// PublisherTable represents the 'shelf.publisher' table
type PublisherTable struct {
	Table string
	ID    string
	Name  string
}

// Publisher is the schema definition for shelf.publisher
var Publisher = PublisherTable{
	Table: "shelf.publisher",
	ID:    "id",
	Name:  "name",
}
