package message

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"messagely/internal/sms"
	"messagely/internal/store"
	"messagely/internal/utils"
)

type SMSHandler struct {
	Messages store.Messages
	Gateway  sms.Gateway
}

// ServeHTTP handles POST /messages/{id}/sms — sender only. The relay is
// fire and forget: a gateway failure is reported to the caller but the
// stored message is untouched either way.
func (h *SMSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := authorizeParty(w, r, h.Messages, senderOnly)
	if !ok {
		return
	}

	p, err := h.Messages.ResolveSMSPayload(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if p.ToPhone == "" {
		utils.JSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "recipient has no phone number"})
		return
	}

	delivery, err := h.Gateway.Send(r.Context(), p.Body, p.ToPhone, p.FromPhone)
	if err != nil {
		logrus.WithError(err).WithField("message_id", id).Error("sms relay failed")
		utils.JSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "sms gateway failed"})
		return
	}

	logrus.WithFields(logrus.Fields{"message_id": id, "ref": delivery.Ref}).Info("sms relayed")
	utils.JSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "sms sent", Data: delivery})
}
