package models

// LearningModule is one step in a learning path.
type LearningModule struct {
	Step           int      `json:"step"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	EstimatedHours int      `json:"estimated_hours"`
	Exercises      []string `json:"exercises,omitempty"`
	Resources      []string `json:"resources,omitempty"`
}

// LearningPath is a structured, LLM-generated ramp-up plan for one tool.
// When generation fails the path degrades to a stub that still carries the
// tool id plus the error, never an empty object.
type LearningPath struct {
	ToolID             string           `json:"tool_id"`
	Title              string           `json:"title"`
	Objectives         []string         `json:"objectives,omitempty"`
	Prerequisites      []string         `json:"prerequisites,omitempty"`
	Modules            []LearningModule `json:"modules,omitempty"`
	SuccessMetrics     []string         `json:"success_metrics,omitempty"`
	TotalDurationHours int              `json:"total_duration_hours,omitempty"`
	Error              string           `json:"error,omitempty"`
}

// ImplementationGuide is the LLM-generated setup walkthrough for one
// recommendation. Content is markdown; ContentHTML is the rendered form
// served to the extension UI.
type ImplementationGuide struct {
	ToolID             string `json:"tool_id"`
	Title              string `json:"title"`
	Content            string `json:"content,omitempty"`
	ContentHTML        string `json:"content_html,omitempty"`
	Complexity         int    `json:"complexity,omitempty"`
	EstimatedSetupTime string `json:"estimated_setup_time,omitempty"`
	Error              string `json:"error,omitempty"`
}
