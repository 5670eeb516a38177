package model

// Profile is the account holder's display information.
type Profile struct {
	Name  string
	Email string
	Phone string
}

// NotificationPrefs controls which channels receive activity alerts.
type NotificationPrefs struct {
	Email bool
	Push  bool
	SMS   bool
}

// Settings holds the account preferences shown on the settings screen.
// Changes live in the provider's memory only and last until the process
// exits; persistence is out of scope.
type Settings struct {
	Profile          Profile
	Notifications    NotificationPrefs
	TwoFactorEnabled bool
}
