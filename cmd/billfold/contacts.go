package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/billfold/billfold/internal/cli"
	"github.com/spf13/cobra"
)

func contactsCmd() *cobra.Command {
	var favoritesOnly bool

	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List saved contacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runContacts(cmd, favoritesOnly)
		},
	}

	cmd.Flags().BoolVar(&favoritesOnly, "favorites", false, "show only favorites")

	return cmd
}

func runContacts(cmd *cobra.Command, favoritesOnly bool) error {
	ctx := cmd.Context()

	store, err := initProvider()
	if err != nil {
		return err
	}

	contacts, err := store.Contacts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}

	// Favorites first, then by name.
	sort.SliceStable(contacts, func(i, j int) bool {
		if contacts[i].Favorite != contacts[j].Favorite {
			return contacts[i].Favorite
		}
		return contacts[i].Name < contacts[j].Name
	})

	fmt.Println(cli.FormatTitle("Contacts")) //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render(" "),
		cli.BoldStyle.Render("Name"),
		cli.BoldStyle.Render("Method"),
		cli.BoldStyle.Render("Address"),
		cli.BoldStyle.Render("Last Used"))

	for _, c := range contacts {
		if favoritesOnly && !c.Favorite {
			continue
		}
		star := " "
		if c.Favorite {
			star = "★"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", star, c.Name, c.Method, c.Value, c.LastUsed)
	}

	return nil
}
