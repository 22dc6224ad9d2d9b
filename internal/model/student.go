package model

// StudentRecord is one roster entry as stored in the students table.
type StudentRecord struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Grade float64 `json:"grade"`
}

// StudentInput carries the raw text of the id, name and grade fields
// exactly as the user typed them. Nothing in it has been validated.
type StudentInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Grade string `json:"grade"`
}
