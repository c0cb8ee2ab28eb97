package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/princessupload/audience-newsletter/internal/cli"
	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/model"
	"github.com/spf13/cobra"
)

func subscribersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribers",
		Short: "Manage newsletter subscribers",
		Long:  `List, add, and remove the subscribers who receive the newsletter by email.`,
	}

	cmd.AddCommand(listSubscribersCmd())
	cmd.AddCommand(addSubscriberCmd())
	cmd.AddCommand(removeSubscriberCmd())

	return cmd
}

func listSubscribersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all subscribers",
		Long:  `Display every subscriber, including unsubscribed ones kept for suppression.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			activeOnly, _ := cmd.Flags().GetBool("active")

			var subscribers []model.Subscriber
			if activeOnly {
				subscribers, err = store.GetActiveSubscribers(ctx)
			} else {
				subscribers, err = store.GetAllSubscribers(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to get subscribers: %w", err)
			}

			if len(subscribers) == 0 {
				fmt.Println(cli.InfoStyle.Render("No subscribers yet. Use 'lotteryletter subscribers add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("EMAIL"),
				headerStyle.Render("SOURCE"),
				headerStyle.Render("SINCE"),
				headerStyle.Render("STATUS"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 30),
				strings.Repeat("-", 8),
				strings.Repeat("-", 10),
				strings.Repeat("-", 12))

			active := 0
			for i := range subscribers {
				sub := &subscribers[i]
				status := "active"
				if !sub.Active() {
					status = "unsubscribed " + sub.UnsubscribedAt.Format(model.DateLayout)
				} else {
					active++
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					sub.Email, sub.Source, sub.SubscribedAt.Format(model.DateLayout), status)
			}

			_ = w.Flush()
			fmt.Println(cli.FormatInfo(fmt.Sprintf("%d subscribers, %d active", len(subscribers), active)))
			return nil
		},
	}

	cmd.Flags().Bool("active", false, "show only active subscribers")

	return cmd
}

func addSubscriberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <email>",
		Short: "Add a subscriber",
		Long:  `Subscribe an email address. Re-adding an unsubscribed address reactivates it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			email := args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.AddSubscriber(ctx, email, "local"); err != nil {
				return fmt.Errorf("failed to add subscriber: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s subscribed", strings.ToLower(strings.TrimSpace(email)))))
			return nil
		},
	}
}

func removeSubscriberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <email>",
		Short: "Unsubscribe an address",
		Long: `Mark a subscriber as unsubscribed. The row is kept so the address
stays suppressed if the website signup list still carries it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			email := args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			assumeYes, _ := cmd.Flags().GetBool("yes")
			if !assumeYes {
				reader := cli.NewNonBlockingReader(os.Stdin)
				ok, err := cli.Confirm(ctx, reader, os.Stdout, fmt.Sprintf("Unsubscribe %s?", email))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatInfo("kept " + email))
					return nil
				}
			}

			if err := store.RemoveSubscriber(ctx, email); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return fmt.Errorf("no subscriber %s", email)
				}
				return fmt.Errorf("failed to remove subscriber: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s unsubscribed", email)))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")

	return cmd
}
