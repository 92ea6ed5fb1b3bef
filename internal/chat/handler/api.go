package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"wachat/internal/chat/validator"
	apperrors "wachat/pkg/errors"
	httputil "wachat/pkg/http"
)

func (h *ChatHandler) Destination(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := validator.DestinationQuery{}
	query.PhoneNumber, _ = httputil.QueryValue(r, phoneNumberParam)
	query.Timezone, _ = httputil.QueryValue(r, timezoneParam)

	if err := h.validator.ValidateDestinationQuery(&query); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.writeError(w, "Destination", apperrors.InvalidInput("Invalid destination query").WithDetails(verrs.Details()))
			return
		}
		h.writeError(w, "Destination", err)
		return
	}

	dest := h.service.Preview(r.Context(), query.PhoneNumber, query.Timezone)
	h.writeSuccess(w, "Destination", dest)
}

func (h *ChatHandler) Timezone(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// Catch-all parameters keep their leading slash.
	timezone := strings.TrimPrefix(ps.ByName("timezone"), "/")

	info, err := h.service.Timezone(r.Context(), timezone)
	if err != nil {
		h.writeError(w, "Timezone", err)
		return
	}
	h.writeSuccess(w, "Timezone", info)
}

func (h *ChatHandler) Country(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	country, err := h.service.Country(r.Context(), strings.ToUpper(ps.ByName("code")))
	if err != nil {
		h.writeError(w, "Country", err)
		return
	}
	h.writeSuccess(w, "Country", country)
}

func (h *ChatHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write JSON response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
