package handlers

const (
	// Prompts longer than this are rejected before matching
	maxPromptLength = 2000

	midiContentType = "audio/midi"
)
