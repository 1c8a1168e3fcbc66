package dto

type SaveContentRequest struct {
	Text        string   `json:"text"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Tags        []string `json:"tags"`
}

type SaveContentResponse struct {
	ContentID string `json:"contentId"`
}
