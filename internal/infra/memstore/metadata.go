package memstore

// Column is one attribute of a catalog table.
type Column struct {
	Name string
	Type string
}

// schema mirrors the relational layout the catalog API reports on its dashboard.
var schema = map[string][]Column{
	"creditcards": {
		{"id", "VARCHAR"}, {"firstName", "VARCHAR"}, {"lastName", "VARCHAR"}, {"expiration", "DATE"},
	},
	"customers": {
		{"id", "INT"}, {"firstName", "VARCHAR"}, {"lastName", "VARCHAR"}, {"ccId", "VARCHAR"},
		{"address", "VARCHAR"}, {"email", "VARCHAR"}, {"password", "VARCHAR"},
	},
	"employees": {
		{"email", "VARCHAR"}, {"password", "VARCHAR"}, {"fullname", "VARCHAR"},
	},
	"genres": {
		{"id", "INT"}, {"name", "VARCHAR"},
	},
	"genres_in_movies": {
		{"genreId", "INT"}, {"movieId", "VARCHAR"},
	},
	"movies": {
		{"id", "VARCHAR"}, {"title", "VARCHAR"}, {"year", "INT"}, {"director", "VARCHAR"}, {"price", "DECIMAL"},
	},
	"ratings": {
		{"movieId", "VARCHAR"}, {"rating", "FLOAT"}, {"numVotes", "INT"},
	},
	"sales": {
		{"id", "INT"}, {"customerId", "INT"}, {"movieId", "VARCHAR"}, {"saleDate", "DATE"}, {"quantity", "INT"},
	},
	"stars": {
		{"id", "VARCHAR"}, {"name", "VARCHAR"}, {"birthYear", "INT"},
	},
	"stars_in_movies": {
		{"starId", "VARCHAR"}, {"movieId", "VARCHAR"},
	},
}

// Metadata returns the column list of every table, keyed by table name.
func (s *Store) Metadata() map[string][]Column {
	out := make(map[string][]Column, len(schema))
	for table, cols := range schema {
		out[table] = append([]Column(nil), cols...)
	}
	return out
}
