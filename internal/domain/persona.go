package domain

// Persona is a named editorial voice. The set is fixed at process start and
// never mutated during a run. Triggers are hints surfaced inside the triage
// prompt; they are never matched deterministically.
type Persona struct {
	ID           string
	Name         string
	Description  string
	Tone         string
	SystemPrompt string
	Triggers     []string
}
