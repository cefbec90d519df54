package documents

// Document is a record in the client's document registry.
type Document struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

// ListRequest holds the optional registry filters. Empty or "Todos" means
// no filter.
type ListRequest struct {
	Type   string `form:"type"`
	Status string `form:"status"`
}

// ListResponse is the filtered registry.
type ListResponse struct {
	Items  []Document `json:"items"`
	Total  int        `json:"total"`
	Type   string     `json:"type"`
	Status string     `json:"status"`
}

// UploadRequest registers the names of files the client picked. File
// content is not accepted.
type UploadRequest struct {
	FileNames []string `json:"fileNames" validate:"required,min=1,max=20,dive,required,max=255"`
}

// UploadResponse acknowledges the registered names.
type UploadResponse struct {
	Received []string `json:"received"`
	Message  string   `json:"message"`
}
