package gateway

// Segment is one element of a mirai message chain.
type Segment struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Target int64  `json:"target,omitempty"`
}

// Plain builds a text segment.
func Plain(text string) Segment {
	return Segment{Type: "Plain", Text: text}
}

// At builds an @-mention segment.
func At(target int64) Segment {
	return Segment{Type: "At", Target: target}
}

// Incoming is a parsed group message: the command text plus who sent it
// and where.
type Incoming struct {
	Text     string
	SenderID int64
	GroupID  int64
}
