package types

// SubmitRequest is a search form submission
type SubmitRequest struct {
	SearchText string `json:"searchText" example:"the lord of the rings"`
}

// PageRequest is a paginator change
type PageRequest struct {
	Page     int `json:"page" binding:"required" example:"2"`
	PageSize int `json:"pageSize" binding:"required" example:"10"`
}
