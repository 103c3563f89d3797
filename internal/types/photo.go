package types

type PhotoAsset struct {
	ID      int    `json:"id"`
	URL     string `json:"url"`
	Preview string `json:"preview"`
	Tags    string `json:"tags"` // comma separated keywords
	User    string `json:"user"`
}

// ImagesResponse is returned by GET /api/images/{query}.
type ImagesResponse struct {
	Success bool         `json:"success"`
	Images  []PhotoAsset `json:"images"`
}
