// Package message serves the message-id-addressed operations. Every
// operation here is gated on the caller being a party to the message:
// the sender, the recipient, or either, depending on the action.
package message

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"messagely/internal/middleware"
	"messagely/internal/store"
	"messagely/internal/utils"
)

type partyRole int

const (
	anyParty partyRole = iota
	senderOnly
	recipientOnly
)

// authorizeParty parses {id}, resolves the message's parties with the
// lightweight projection, and checks the caller against the required
// role. On failure it writes the response and returns ok=false. An
// unknown message is 404; a caller outside the role is 403.
func authorizeParty(w http.ResponseWriter, r *http.Request, msgs store.Messages, role partyRole) (id int64, ok bool) {
	caller := middleware.CallerUsername(r)
	if caller == "" {
		utils.JSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "unauthorized"})
		return 0, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "invalid message id"})
		return 0, false
	}

	from, to, err := msgs.ResolveParties(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return 0, false
	}

	allowed := false
	switch role {
	case senderOnly:
		allowed = caller == from
	case recipientOnly:
		allowed = caller == to
	default:
		allowed = caller == from || caller == to
	}
	if !allowed {
		utils.JSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "forbidden"})
		return 0, false
	}
	return id, true
}
