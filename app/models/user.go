package models

import "strings"

// NormalizeEmail trims and lower-cases an email address the way the sign-in
// forms do before looking a user up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize trims the name and normalizes the email. The password is kept
// verbatim.
func (r Registration) Normalize() Registration {
	return Registration{
		Name:     strings.TrimSpace(r.Name),
		Email:    NormalizeEmail(r.Email),
		Password: r.Password,
	}
}

// Validate checks the sign-up form. Missing fields are reported before a
// short password, which is reported before a malformed email.
func (r Registration) Validate() error {
	verrs, err := fieldErrors(r.Normalize())
	if err != nil {
		return err
	}
	if len(verrs) == 0 {
		return nil
	}
	if fe := firstWithTag(verrs, "required"); fe != nil {
		return &ValidationError{Field: fe.Field(), Message: "All fields are required"}
	}
	if fe := firstWithTag(verrs, "min"); fe != nil {
		return &ValidationError{Field: fe.Field(), Message: "Password must be at least 6 characters"}
	}
	return &ValidationError{Field: verrs[0].Field(), Message: "Please enter a valid email"}
}

// Validate checks that both login fields are present.
func (c Credentials) Validate() error {
	verrs, err := fieldErrors(Credentials{Email: NormalizeEmail(c.Email), Password: c.Password})
	if err != nil {
		return err
	}
	if len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field(), Message: "Email and password are required"}
	}
	return nil
}

// Session returns the credential-free copy of the user.
func (u User) Session() SessionUser {
	return SessionUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
