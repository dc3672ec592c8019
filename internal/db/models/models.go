package models

const (
	// DefaultLimit is the max number of rows that are retrieved from the DB per listing API call
	DefaultLimit = 50
)

// ListOptions represents pagination options for list operations
type ListOptions struct {
	Limit  int `json:"limit"`  // Number of items to return
	Offset int `json:"offset"` // Number of items to skip
}

// Normalized returns a copy with the limit capped to DefaultLimit and
// negative offsets zeroed. A nil receiver yields the defaults.
func (o *ListOptions) Normalized() ListOptions {
	var out ListOptions
	if o != nil {
		out = *o
	}
	if out.Limit <= 0 || out.Limit > DefaultLimit {
		out.Limit = DefaultLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	return out
}
