package responses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/logger"
	"github.com/jobhive/jobhive-backend/pkg/types"
)

// exposeStacks controls whether error envelopes carry the error chain.
// Enabled everywhere except production; set once at startup.
var exposeStacks = false

// ExposeStacks toggles stack exposure in error envelopes.
func ExposeStacks(enable bool) {
	exposeStacks = enable
}

// WriteMsg writes a success envelope carrying only a message.
func WriteMsg(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Success: true, Msg: msg})
}

// WriteResult writes a success envelope carrying a result payload.
func WriteResult(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Success: true, Result: result})
}

// WriteMsgResult writes a success envelope carrying both a message and a result.
func WriteMsgResult(w http.ResponseWriter, msg string, result any) {
	writeJSON(w, http.StatusOK, types.SuccessEnvelope{Success: true, Msg: msg, Result: result})
}

// WriteError maps err onto the error envelope and its HTTP status. Client
// errors keep their message; internal and dependency failures are masked
// behind the code's public message.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeTokenExpired,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.ErrorEnvelope{Success: false, Msg: msg}
	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Msg = details
		}
	}
	if exposeStacks {
		payload.Stack = stackFromChain(err)
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)
		fields := map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_constraint": dump.PGConstraint,
		}
		ctx = logg.WithFields(ctx, fields)
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

// WriteNotFoundPage is the fallback body for unmatched routes.
func WriteNotFoundPage(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, types.ErrorEnvelope{Success: false, Msg: "Page not found."})
}

func stackFromChain(err error) string {
	var chain string
	for e := err; e != nil; e = errors.Unwrap(e) {
		if chain != "" {
			chain += "\n"
		}
		chain += fmt.Sprintf("%T: %v", e, e)
	}
	return chain
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
