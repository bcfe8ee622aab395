package game

// sessionReadyMsg is sent once the session has loaded its saved level
// and score and generated the first question.
type sessionReadyMsg struct {
	Err error
}

// feedbackElapsedMsg fires when the post-answer feedback delay ends.
// Seq pins it to the question it was scheduled for; a stale value
// means the round has already moved on and the message is dropped.
type feedbackElapsedMsg struct {
	Seq int
}
