package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobhive/jobhive-backend/api/responses"
	"github.com/jobhive/jobhive-backend/api/validators"
	"github.com/jobhive/jobhive-backend/internal/auth"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/logger"
)

// AuthSignup registers a new account and emails the activation link.
func AuthSignup(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.SignupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.Input()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid signup payload"))
			return
		}

		if err := svc.Signup(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Account created successfully. check your email to activate your account.")
	}
}

// AuthActivateAccount consumes the emailed activation token.
func AuthActivateAccount(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Token not provided."))
			return
		}

		if err := svc.ActivateAccount(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Account activated successfully.")
	}
}

// AuthLogin exchanges credentials for a bearer token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.Identifier() == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "Email or mobile number required.")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), auth.LoginInput{
			Identifier: body.Identifier(),
			Password:   body.Password,
			UserAgent:  r.UserAgent(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsgResult(w, "logged in successfully.", map[string]any{"token": result.Token})
	}
}

// AuthForgetPassword emails a one-time reset code.
func AuthForgetPassword(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.ForgetPasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ForgetPassword(r.Context(), body.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Forget code sent to your email. will expire in 10 minutes.")
	}
}

// AuthResetCode verifies an emailed reset code.
func AuthResetCode(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.ResetCodeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.VerifyResetCode(r.Context(), body.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "You can change your password now.")
	}
}

// AuthChangePassword sets a new password after a verified reset code.
func AuthChangePassword(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.ChangePasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResetPassword(r.Context(), body.Email, body.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Password changed successfully.")
	}
}
