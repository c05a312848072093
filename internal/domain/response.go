package domain

// ResponseEnvelope is the engine's output for one turn: a chat message plus
// an optional widget to render alongside it. Built fresh every turn and never
// mutated afterwards.
type ResponseEnvelope struct {
	Text   string  `json:"text"`
	Widget *Widget `json:"widget,omitempty"`
}
