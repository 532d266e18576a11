package dto

import "io"

// UpdateProfileRequest is the ephemeral form state behind the profile
// "Save" action. Every field is optional; an all-empty request is a
// no-op and must not trigger any remote call.
type UpdateProfileRequest struct {
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	OldPassword     string `form:"old_password"`
	NewPassword     string `form:"new_password"`
	ConfirmPassword string `form:"confirm_password"`

	Avatar            io.Reader `form:"-"`
	AvatarContentType string    `form:"-"`
}

func (r *UpdateProfileRequest) Empty() bool {
	return r.FirstName == "" &&
		r.LastName == "" &&
		r.OldPassword == "" &&
		r.NewPassword == "" &&
		r.ConfirmPassword == "" &&
		r.Avatar == nil
}

func (r *UpdateProfileRequest) HasPasswordChange() bool {
	return r.OldPassword != "" && r.NewPassword != "" && r.ConfirmPassword != ""
}

// Clear resets the form fields so the UI returns to an editable state,
// regardless of how far the workflow got.
func (r *UpdateProfileRequest) Clear() {
	*r = UpdateProfileRequest{}
}

type ProfileUpdateResult struct {
	ProfileChanged  bool   `json:"profile_changed"`
	PasswordChanged bool   `json:"password_changed"`
	FanOutWarning   string `json:"fan_out_warning,omitempty"`
}
