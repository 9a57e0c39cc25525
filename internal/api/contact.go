package api

import (
	"net/http"

	"github.com/p-n-ai/knowledge-hub/internal/contact"
)

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if err := decodeJSON(r, &sub, false); err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := h.contacts.Submit(r.Context(), sub)
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusAccepted, map[string]any{
		"id":      msg.ID,
		"message": "Thank you for your message! We'll get back to you soon.",
	})
}
