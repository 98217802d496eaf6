// pkg/registry/schema.go
package registry

// TaskRegistry catalogs the Zeebe service tasks this module implements,
// keyed by task type. It is consumed by deployment tooling and kept in
// configs/task-registry.json.
type TaskRegistry struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Tasks       []Task `json:"tasks"`
}

type Task struct {
	ID           string                 `json:"id"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	TaskType     string                 `json:"taskType"`
	Version      string                 `json:"version"`
	Status       string                 `json:"status"`
	TriggerKinds []string               `json:"triggerKinds"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Timeout      string                 `json:"timeout"`
	Retries      int                    `json:"retries"`
}
