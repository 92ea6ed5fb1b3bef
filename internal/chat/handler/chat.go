package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"wachat/internal/chat/service"
	"wachat/internal/chat/validator"
	apperrors "wachat/pkg/errors"
	httputil "wachat/pkg/http"
	"wachat/pkg/logger"
)

const (
	phoneNumberParam = "phoneNumber"
	timezoneParam    = "timezone"
	phoneFormField   = "phone"
)

//go:embed templates/home.html
var templateFS embed.FS

var homeTemplate = template.Must(template.ParseFS(templateFS, "templates/home.html"))

type homePage struct {
	PhoneNumber  string
	AutoDispatch bool
}

type ChatHandler struct {
	service   service.ChatService
	validator *validator.QueryValidator
	log       *logger.Logger
}

func NewChatHandler(svc service.ChatService, v *validator.QueryValidator, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		service:   svc,
		validator: v,
		log:       log,
	}
}

// Home renders the chat form. With a phoneNumber in the query the page also
// carries a script that hands the browser timezone to Open.
func (h *ChatHandler) Home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	phoneNumber, ok := httputil.QueryValue(r, phoneNumberParam)

	var buf bytes.Buffer
	if err := homeTemplate.Execute(&buf, homePage{PhoneNumber: phoneNumber, AutoDispatch: ok}); err != nil {
		h.log.Error("failed to render home page", "handler", "Home", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to render page", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Home", "error", writeErr)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("failed to write home page", "handler", "Home", "error", err)
	}
}

// Open is the auto-dispatch target: normalize, infer, redirect.
func (h *ChatHandler) Open(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	phoneNumber, ok := httputil.QueryValue(r, phoneNumberParam)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	timezone, _ := httputil.QueryValue(r, timezoneParam)

	dest := h.service.AutoDispatch(r.Context(), phoneNumber, timezone)
	http.Redirect(w, r, dest.URL, http.StatusFound)
}

// Chat handles the manual form. The submitted value is used verbatim.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseForm(); err != nil {
		h.log.Warn("Failed to parse chat form",
			"handler", "Chat",
			"error", err,
		)
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Malformed form submission")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Chat", "error", writeErr)
		}
		return
	}

	dest := h.service.ManualDispatch(r.Context(), r.PostForm.Get(phoneFormField))
	http.Redirect(w, r, dest.URL, http.StatusSeeOther)
}
