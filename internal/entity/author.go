package entity

type Author struct {
	AuthorID int    `json:"AuthorId"`
	Name     string `json:"Name"`
}
