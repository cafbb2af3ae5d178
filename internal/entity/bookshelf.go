package entity

// Bookshelf is a row of the bookshelves table together with the books that
// reference it.
type Bookshelf struct {
	BookshelfID int    `json:"BookshelfId"`
	NamePlate   string `json:"NamePlate"`
	Books       []Book `json:"Books"`
}
