package handler

import (
	"net/http"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/command"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CommandsHandler struct {
	processor  *command.Processor
	dispatcher *worker.Dispatcher
}

func NewCommandsHandler(processor *command.Processor, dispatcher *worker.Dispatcher) *CommandsHandler {
	return &CommandsHandler{processor: processor, dispatcher: dispatcher}
}

// Execute godoc
// @Summary      Execute a text command
// @Description  Runs one VERB["param",...] command and returns the plain-text reply. When reply_to is set the reply is also emailed.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        body body dto.CommandRequest true "Command"
// @Success      200  {object} dto.CommandResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/commands [post]
func (h *CommandsHandler) Execute(c *gin.Context) {
	var req dto.CommandRequest
	if !bindAndValidate(c, &req) {
		return
	}
	reply, err := h.processor.Execute(c.Request.Context(), req.Command)
	if err != nil {
		respondErr(c, err)
		return
	}

	if req.ReplyTo != "" && h.dispatcher != nil {
		job := worker.EmailJobPayload{
			ToEmail: req.ReplyTo,
			Subject: "Re: " + req.Command,
			Body:    reply,
		}
		if err := h.dispatcher.EnqueueEmail(c.Request.Context(), job); err != nil {
			log.Warn().Err(err).Str("to", req.ReplyTo).Msg("commands: failed to enqueue reply email")
		}
	}

	c.JSON(http.StatusOK, dto.CommandResponse{Reply: reply})
}
