package service

import "errors"

var (
	ErrInternal             = errors.New("internal server error")
	ErrNotAuthorized        = errors.New("user is not authorized")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email is already taken")
	ErrPasswordsDoNotMatch  = errors.New("passwords do not match")
	ErrProfileNotFound      = errors.New("profile not found for authenticated user")
	ErrUploadFailed         = errors.New("failed to upload avatar")
	ErrCredentialRejected   = errors.New("old password is incorrect")
	ErrPasswordChangeFailed = errors.New("failed to change password")
	ErrProfileUpdateFailed  = errors.New("failed to update profile")
	ErrUpdateInFlight       = errors.New("profile update is already in progress")
	ErrPostNotFound         = errors.New("post not found")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")
)
