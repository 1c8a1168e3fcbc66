package aura

type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
)

func (a Action) Valid() bool {
	return a == ActionPause || a == ActionResume
}

// InstanceSummary is one item of the list endpoint.
type InstanceSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Memory  string `json:"memory"`
	Storage string `json:"storage"`
	Region  string `json:"region"`
}

// InstanceDetail is the full detail snapshot for one instance.
type InstanceDetail struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Status        string `json:"status"`
	Memory        string `json:"memory"`
	Storage       string `json:"storage"`
	Region        string `json:"region"`
	CloudProvider string `json:"cloud_provider"`
	TenantID      string `json:"tenant_id"`
}

// ActionResult is the acknowledgement body of a pause/resume call.
type ActionResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// The Aura API wraps every response body in a "data" envelope.
type listEnvelope struct {
	Data []InstanceSummary `json:"data"`
}

type detailEnvelope struct {
	Data InstanceDetail `json:"data"`
}

type actionEnvelope struct {
	Data ActionResult `json:"data"`
}
