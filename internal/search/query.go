// Package search parses the application list endpoint's search string.
//
// Supported forms, combinable in one query:
//
//	id:42               exact id match
//	name:ann            case-insensitive substring on the applicant name
//	email:a@b.com       case-insensitive substring on the applicant email
//	free text           substring across name OR email OR phone
package search

import (
	"strconv"
	"strings"
)

// Query is a parsed search string. Zero value matches everything.
type Query struct {
	ID    *uint  // id:<n>
	Name  string // name:<text>
	Email string // email:<text>
	Text  string // remaining bare terms, joined by single spaces
}

// IsEmpty reports whether the query carries no criteria.
func (q Query) IsEmpty() bool {
	return q.ID == nil && q.Name == "" && q.Email == "" && q.Text == ""
}

// Parse tokenizes a raw search string. Tokens with an unknown prefix, or an
// id: value that is not a number, are treated as bare text rather than
// rejected, so a typo still searches instead of erroring.
func Parse(raw string) Query {
	var q Query
	var bare []string

	for _, tok := range strings.Fields(raw) {
		key, val, found := strings.Cut(tok, ":")
		if !found {
			bare = append(bare, tok)
			continue
		}

		switch strings.ToLower(key) {
		case "id":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				bare = append(bare, tok)
				continue
			}
			id := uint(n)
			q.ID = &id
		case "name":
			q.Name = val
		case "email":
			q.Email = val
		default:
			bare = append(bare, tok)
		}
	}

	q.Text = strings.Join(bare, " ")
	return q
}
