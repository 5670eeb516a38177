package main

import (
	"fmt"
	"strings"

	"github.com/billfold/billfold/internal/cli"
	"github.com/spf13/cobra"
)

type settingsFlags struct {
	emailNotifications string
	pushNotifications  string
	smsNotifications   string
	twoFactor          string
}

func settingsCmd() *cobra.Command {
	flags := &settingsFlags{}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and adjust account preferences",
		Long: `Show the account profile and preferences. Toggles apply for this
session only; nothing is persisted:

  billfold settings
  billfold settings --push-notifications off --two-factor on`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSettings(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.emailNotifications, "email-notifications", "", "email alerts (on, off)")
	cmd.Flags().StringVar(&flags.pushNotifications, "push-notifications", "", "push alerts (on, off)")
	cmd.Flags().StringVar(&flags.smsNotifications, "sms-notifications", "", "SMS alerts (on, off)")
	cmd.Flags().StringVar(&flags.twoFactor, "two-factor", "", "two-factor authentication (on, off)")

	return cmd
}

func runSettings(cmd *cobra.Command, flags *settingsFlags) error {
	ctx := cmd.Context()

	store, err := initProvider()
	if err != nil {
		return err
	}
	settings, err := store.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	changed := false
	apply := func(target *bool, value string) error {
		if value == "" {
			return nil
		}
		on, parseErr := parseToggle(value)
		if parseErr != nil {
			return parseErr
		}
		*target = on
		changed = true
		return nil
	}
	if err := apply(&settings.Notifications.Email, flags.emailNotifications); err != nil {
		return err
	}
	if err := apply(&settings.Notifications.Push, flags.pushNotifications); err != nil {
		return err
	}
	if err := apply(&settings.Notifications.SMS, flags.smsNotifications); err != nil {
		return err
	}
	if err := apply(&settings.TwoFactorEnabled, flags.twoFactor); err != nil {
		return err
	}

	if changed {
		if err := store.UpdateSettings(ctx, settings); err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}
	}

	fmt.Println(cli.FormatTitle("Settings")) //nolint:forbidigo // User-facing output

	profile := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s",
		settings.Profile.Name, settings.Profile.Email, settings.Profile.Phone)
	fmt.Println(cli.RenderBox("Profile", profile)) //nolint:forbidigo // User-facing output

	prefs := fmt.Sprintf("Email notifications: %s\nPush notifications: %s\nSMS notifications: %s\nTwo-factor authentication: %s",
		toggleLabel(settings.Notifications.Email),
		toggleLabel(settings.Notifications.Push),
		toggleLabel(settings.Notifications.SMS),
		toggleLabel(settings.TwoFactorEnabled))
	fmt.Println(cli.RenderBox("Preferences", prefs)) //nolint:forbidigo // User-facing output

	if changed {
		fmt.Println(cli.FormatWarning("Changes last for this session only")) //nolint:forbidigo // User-facing output
	}
	return nil
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "enabled":
		return true, nil
	case "off", "false", "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("invalid toggle %q, use on or off", s)
	}
}

func toggleLabel(on bool) string {
	if on {
		return cli.SuccessStyle.Render("on")
	}
	return cli.SubtleStyle.Render("off")
}
