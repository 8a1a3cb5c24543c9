package genai

// Part is one piece of content. Only text parts are used.
type Part struct {
	Text string `json:"text"`
}

// Content is a role-tagged message.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateRequest is the generateContent request body.
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// Candidate is one generated alternative.
type Candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// GenerateResponse is the generateContent response envelope.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Text returns the first candidate's first text part.
func (r GenerateResponse) Text() (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	c := r.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 {
		return "", false
	}
	return c.Parts[0].Text, true
}
