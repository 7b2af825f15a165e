package schema

// PersonTable represents the 'shelf.person' table
type PersonTable struct {
	Table       string
	ID          string
	DisplayName string
	SortName    string
}

// Person is the schema definition for shelf.person
var Person = PersonTable{
	Table:       "shelf.person",
	ID:          "id",
	DisplayName: "displayname",
	SortName:    "sortname",
}
