package search

import (
	"strconv"
	"strings"
)

// Query represents the structured parameters for a history search.
// It decouples the raw console input from the index engine requirements.
type Query struct {
	RawInput string // The original input from the user
	Terms    string // The actual text to match against message content
	Role     string // Optional role filter ("user" or "assistant")
	Limit    int    // Maximum number of results
}

// ParseQuery parses command-line style arguments out of a raw string.
// Example: /find "revenue" --role assistant --limit 5
func ParseQuery(input string) *Query {
	query := &Query{
		RawInput: input,
		Limit:    10, // Default limit
	}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		// Handle flags like --role user or --limit 5
		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			val := parts[i+1]

			switch key {
			case "role":
				query.Role = val
			case "limit":
				if limit, err := strconv.Atoi(val); err == nil && limit > 0 {
					query.Limit = limit
				}
			}
			i++ // Skip the value part in next iteration
			continue
		}

		// If it's not a flag, it's a search term
		if !strings.HasPrefix(part, "/") {
			textTerms = append(textTerms, strings.Trim(part, `"`))
		}
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
