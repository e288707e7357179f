package models

import "gorm.io/gorm"

// SearchRecord is one completed fetch kept in the search history.
type SearchRecord struct {
	gorm.Model
	SearchText string `json:"searchText" gorm:"not null;index"`
	PageSize   int    `json:"pageSize"`
	Page       int    `json:"page"`
	NumFound   int    `json:"numFound"`
	Failed     bool   `json:"failed" gorm:"default:false"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// Search returns the search the record was made for.
func (r SearchRecord) Search() CurrentSearch {
	return CurrentSearch{SearchText: r.SearchText, PageSize: r.PageSize, Page: r.Page}
}
