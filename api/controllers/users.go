package controllers

import (
	"net/http"

	"github.com/jobhive/jobhive-backend/api/middleware"
	"github.com/jobhive/jobhive-backend/api/responses"
	"github.com/jobhive/jobhive-backend/api/validators"
	"github.com/jobhive/jobhive-backend/internal/users"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/logger"
)

// UserProfilePicture replaces the caller's profile picture.
func UserProfilePicture(svc users.Service, uploadCfg config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := validators.FormFile(r, "profilePicture", uploadCfg.MaxBytes(), validators.ImageTypes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if _, err := svc.UpdateProfilePicture(r.Context(), userID, file); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Profile picture added.")
	}
}

// UserUpdate edits the caller's profile. Changing email or mobile number
// deactivates the account until it is re-activated by mail.
func UserUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body users.UpdateUserInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if _, err := svc.Update(r.Context(), userID, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "User updated successfully. Check your email to re-activate your account. You need to login again")
	}
}

// UserDelete removes the caller's account and everything it owns.
func UserDelete(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if err := svc.Delete(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "User deleted successfully.")
	}
}

// UserGet returns the caller's own account.
func UserGet(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		user, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteResult(w, map[string]any{"user": user})
	}
}

// UserGetByID returns the public view of another account.
func UserGetByID(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuidParam(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetPublic(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteResult(w, map[string]any{"user": user})
	}
}

// UserUpdatePassword changes the password of a logged-in account and revokes
// its sessions.
func UserUpdatePassword(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body users.UpdatePasswordRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if err := svc.UpdatePassword(r.Context(), userID, body.CurrentPassword, body.NewPassword); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Password changed successfully. try to login again")
	}
}

// UserAccountsWithRecoveryEmail lists account emails sharing a recovery email.
func UserAccountsWithRecoveryEmail(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body users.RecoveryEmailRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accounts, err := svc.AccountsWithRecoveryEmail(r.Context(), body.RecoveryEmail)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsgResult(w, "Emails with same recovery mail", accounts)
	}
}
