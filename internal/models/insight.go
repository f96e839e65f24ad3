package models

// Recommendations is the structured answer requested from the insight generator.
type Recommendations struct {
	Exercise    string `json:"exercise"`
	Diet        string `json:"diet"`
	Mindfulness string `json:"mindfulness"`
	Sleep       string `json:"sleep"`
}
