package models

// BookDB represents a book record in the database.
type BookDB struct {
	ID            int64  `json:"id" db:"id"`
	Title         string `json:"title" db:"title"`
	Author        string `json:"author" db:"author"`
	YearPublished int    `json:"yearPublished" db:"year_published"`
	ViewCount     int64  `json:"viewCount" db:"view_count"`
}

// BookDetails is the projection returned by the get-by-id endpoint:
// the book fields plus the popularity score derived from the view count.
type BookDetails struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	ViewCount  int64   `json:"viewCount"`
	Popularity float64 `json:"popularity"`
}

// BookTitleDB is the title-only projection used by the popular listing.
type BookTitleDB struct {
	Title string `json:"title" db:"title"`
}
