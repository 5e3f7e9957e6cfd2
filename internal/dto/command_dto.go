package dto

type CommandRequest struct {
	// Command is a full text command, e.g. `INSORD["1234567","7654321","Credit"]`.
	Command string `json:"command" binding:"required" validate:"required"`
	// ReplyTo, when set, asks for the reply to also be emailed.
	ReplyTo string `json:"reply_to,omitempty" validate:"omitempty,email"`
}

type CommandResponse struct {
	Reply string `json:"reply"`
}
