// Package webhook receives Twilio-style WhatsApp callbacks and feeds
// detected codes into the claim orchestrator. The callback is always
// answered immediately with an empty TwiML document; claiming runs on
// its own goroutine so the transport never waits on the remote API.
package webhook

import (
	"context"
	"net/http"
	"strings"

	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/observability"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

const twimlEmpty = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

// groupSenderMarker identifies WhatsApp group senders, which are
// ignored: only direct messages may trigger claims.
const groupSenderMarker = "@g.us"

// CodeClaimer is the slice of the orchestrator the transport needs.
type CodeClaimer interface {
	ClaimCode(ctx context.Context, code string) domain.ClaimOutcome
}

type Handler struct {
	claimer  CodeClaimer
	notifier ports.Notifier
	logger   observability.Logger

	// dispatch runs the claim flow; replaced in tests to run inline.
	dispatch func(fn func())
}

func NewHandler(claimer CodeClaimer, notifier ports.Notifier, logger observability.Logger) *Handler {
	if logger == nil {
		logger = observability.Nop{}
	}

	return &Handler{
		claimer:  claimer,
		notifier: notifier,
		logger:   logger,
		dispatch: func(fn func()) { go fn() },
	}
}

// Routes builds the HTTP surface: the webhook itself and a health
// probe, both wrapped in logging and panic recovery.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/whatsapp", requireMethod(http.MethodPost, h.handleIncoming))
	mux.HandleFunc("/healthz", requireMethod(http.MethodGet, h.handleHealth))

	return RequestLoggingMiddleware(h.logger, RecoverMiddleware(h.logger, mux))
}

func (h *Handler) handleIncoming(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn(r.Context(), "unparseable webhook payload", "error", err.Error())
		writeTwiML(w)
		return
	}

	from := r.FormValue("From")
	body := strings.ToUpper(strings.TrimSpace(r.FormValue("Body")))

	if strings.Contains(from, groupSenderMarker) {
		h.logger.Info(r.Context(), "group message ignored", "from", from)
		writeTwiML(w)
		return
	}

	if !domain.IsClaimCode(body) {
		h.logger.Info(r.Context(), "message carries no claim code", "from", from)
		writeTwiML(w)
		return
	}

	h.logger.Info(r.Context(), "claim code detected", "from", from, "code", body)
	h.dispatch(func() {
		// the claim outlives the webhook request
		h.runClaim(context.Background(), body, from)
	})

	writeTwiML(w)
}

func (h *Handler) runClaim(ctx context.Context, code, from string) {
	outcome := h.claimer.ClaimCode(ctx, code)

	if !outcome.Succeeded {
		observability.CaptureError(&claimFailedError{code: code, message: outcome.Message})
	}

	if h.notifier == nil {
		return
	}
	if err := h.notifier.Notify(ctx, from, outcome); err != nil {
		h.logger.Warn(ctx, "outcome notification failed", "recipient", from, "error", err.Error())
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// requireMethod emulates the method-specific mux patterns ("POST /x")
// of Go 1.22+ on older toolchains: wrong methods get 405.
func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func writeTwiML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(twimlEmpty))
}

type claimFailedError struct {
	code    string
	message string
}

func (e *claimFailedError) Error() string {
	return "claim failed for code " + e.code + ": " + e.message
}
