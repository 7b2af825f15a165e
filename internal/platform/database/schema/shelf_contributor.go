package schema

// ContributorTable represents the 'shelf.contributor' junction table
// linking books to people with a role and an optional credit order.
type ContributorTable struct {
	Table       string
	BookID      string
	PersonID    string
	Role        string
	CreditOrder string
}

// Contributor is the schema definition for shelf.contributor
var Contributor = ContributorTable{
	Table:       "shelf.contributor",
	BookID:      "bookid",
	PersonID:    "personid",
	Role:        "role",
	CreditOrder: "creditorder",
}
