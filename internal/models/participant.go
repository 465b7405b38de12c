package models

// Participant is an identity that can take part in a session
type Participant struct {
	// ID is the Discord user ID of the participant
	ID string

	// Name is the display name of the participant
	Name string

	// Synthetic marks a stand-in participant used to fill rehearsal
	// lobbies; synthetic participants never receive Discord side effects
	Synthetic bool
}
