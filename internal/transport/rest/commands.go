package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/dante-lexicon/internal/service/command"
	"github.com/heartmarshall/dante-lexicon/pkg/ctxutil"
)

const maxCommandBody = 16 << 10

type commandHandler interface {
	Handle(ctx context.Context, msg command.Message) (command.Reply, error)
}

// CommandHandler accepts chat messages relayed by a bot frontend.
type CommandHandler struct {
	log        *slog.Logger
	dispatcher commandHandler
}

// NewCommandHandler creates a CommandHandler.
func NewCommandHandler(logger *slog.Logger, dispatcher commandHandler) *CommandHandler {
	return &CommandHandler{
		log:        logger.With("handler", "commands"),
		dispatcher: dispatcher,
	}
}

// CommandRequest is the JSON body of POST /api/v1/commands.
type CommandRequest struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// CommandResponse carries the rendered reply.
type CommandResponse struct {
	Reply string `json:"reply"`
}

// Handle serves POST /api/v1/commands. Ignored messages get 204.
func (h *CommandHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCommandBody)

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := ctxutil.WithChatID(r.Context(), req.ChatID)
	reply, err := h.dispatcher.Handle(ctx, command.Message{ChatID: req.ChatID, Text: req.Text})
	if err != nil {
		h.log.WarnContext(ctx, "command aborted",
			slog.Int64("chat_id", req.ChatID),
			slog.String("relay", ctxutil.RelayFromCtx(ctx)),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}

	if reply.Skip {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, CommandResponse{Reply: reply.Text})
}
