package dto

type InstanceResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Status            string `json:"status"`
	Memory            string `json:"memory"`
	Storage           string `json:"storage"`
	Region            string `json:"region"`
	LastUpdated       string `json:"lastUpdated"` // RFC3339, empty until first merge
	RecentlyRefreshed bool   `json:"recentlyRefreshed"`
}

type InstanceListResponse struct {
	Instances []InstanceResponse `json:"instances"`
}

type InstanceActionRequest struct {
	Action string `json:"action"` // "pause" or "resume"
}
