package service

import (
	"strings"
	"sync"

	"sfa-bank-client/internal/core/domain"

	"github.com/rs/zerolog"
)

// NotificationPrefs are device-local notification toggles.
type NotificationPrefs struct {
	Email       bool
	SMS         bool
	LoginAlerts bool
	LargeDebits bool
}

// SettingsController drives the settings screen: profile edits and
// notification preferences. Profile changes go through the session so
// they survive restarts; notification toggles stay on this device.
type SettingsController struct {
	session *SessionService
	log     zerolog.Logger

	mu      sync.Mutex
	prefs   NotificationPrefs
	message string
	errMsg  string
}

func NewSettingsController(session *SessionService, log zerolog.Logger) *SettingsController {
	return &SettingsController{
		session: session,
		log:     log.With().Str("component", "settings").Logger(),
		prefs: NotificationPrefs{
			Email:       true,
			LoginAlerts: true,
		},
	}
}

func (c *SettingsController) Profile() domain.User {
	return c.session.User()
}

func (c *SettingsController) Prefs() NotificationPrefs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs
}

func (c *SettingsController) Message() string { c.mu.Lock(); defer c.mu.Unlock(); return c.message }

func (c *SettingsController) Error() string { c.mu.Lock(); defer c.mu.Unlock(); return c.errMsg }

// UpdateProfile applies a profile edit. The full name is required;
// other fields keep their current value when left empty.
func (c *SettingsController) UpdateProfile(fullName, phoneNumber string) {
	fullName = strings.TrimSpace(fullName)
	phoneNumber = strings.TrimSpace(phoneNumber)

	c.mu.Lock()
	if fullName == "" {
		c.errMsg = "Please enter your full name."
		c.message = ""
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	update := domain.UserUpdate{FullName: &fullName}
	if phoneNumber != "" {
		update.PhoneNumber = &phoneNumber
	}
	err := c.session.UpdateUser(update)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn().Err(err).Msg("profile update failed")
		c.errMsg = "Could not save your profile. Please try again."
		c.message = ""
		return
	}
	c.errMsg = ""
	c.message = "Profile updated"
}

// ChangePassword validates a password change. There is no password
// change endpoint yet, so validation is all that happens; the server
// flow goes through the reset-by-email path.
func (c *SettingsController) ChangePassword(current, next, confirm string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = ""
	switch {
	case current == "" || next == "" || confirm == "":
		c.errMsg = "Please fill in all password fields."
	case len(next) < 6:
		c.errMsg = "Password must be at least 6 characters."
	case next != confirm:
		c.errMsg = "Passwords do not match."
	default:
		c.errMsg = ""
		c.message = "Use the password reset flow on the sign-in screen to finish changing your password."
	}
}

// SetPrefs replaces the notification toggles.
func (c *SettingsController) SetPrefs(prefs NotificationPrefs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefs = prefs
	c.message = "Notification preferences saved"
}
