package models

// SiteStock is the quantity of a fungible item held at one headquarters.
type SiteStock struct {
	HeadquarterID int64 `bson:"headquarterId" json:"headquarterId"`
	Available     int   `bson:"available" json:"available"`
}

// MediaPointer references a document stored on S3 (or compatible).
type MediaPointer struct {
	ID       string `bson:"id" json:"id"`
	URL      string `bson:"url" json:"url"`
	FileName string `bson:"fileName" json:"fileName"`
	FileType string `bson:"fileType" json:"fileType"`
}

// Page is the envelope every paginated list endpoint returns.
type Page struct {
	Content       any   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int64 `json:"totalPages"`
	Page          int64 `json:"page"`
	Size          int64 `json:"size"`
}

// NewPage computes totalPages from the element count.
func NewPage(content any, total, page, size int64) Page {
	totalPages := int64(0)
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          page,
		Size:          size,
	}
}
