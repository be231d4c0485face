package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"helpboard/app/models"
	"helpboard/app/services"
)

func (a *app) postCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create and manage help requests",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}
	cmd.AddCommand(a.postNewCommand(), a.postEditCommand(), a.postCloseCommand(), a.postDeleteCommand())
	return cmd
}

func bindFields(cmd *cobra.Command, f *models.PostFields) {
	cmd.Flags().StringVar(&f.Name, "name", "", "your name")
	cmd.Flags().StringVar(&f.Category, "category", "", "category id (see \"helpboard categories\")")
	cmd.Flags().StringVar(&f.Description, "description", "", "what you need help with")
	cmd.Flags().StringVar(&f.Contact, "contact", "", "how to reach you")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}

func (a *app) postNewCommand() *cobra.Command {
	var fields models.PostFields
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Submit a help request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			post, err := a.postService.SubmitPost(fields)
			if err != nil {
				return friendly(err)
			}
			printSuccess(cmd.OutOrStdout(), "%s (#%d)", services.MsgCreated, post.ID)
			return nil
		},
	}
	bindFields(cmd, &fields)
	return cmd
}

// postEditCommand keeps every field whose flag was not given.
func (a *app) postEditCommand() *cobra.Command {
	var fields models.PostFields
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an open help request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.postService.GetPost(id)
			if err != nil {
				return friendly(err)
			}
			merged := current.Fields()
			flags := cmd.Flags()
			if flags.Changed("name") {
				merged.Name = fields.Name
			}
			if flags.Changed("category") {
				merged.Category = fields.Category
			}
			if flags.Changed("description") {
				merged.Description = fields.Description
			}
			if flags.Changed("contact") {
				merged.Contact = fields.Contact
			}
			if _, err := a.postService.EditPost(id, merged); err != nil {
				return friendly(err)
			}
			printSuccess(cmd.OutOrStdout(), services.MsgUpdated)
			return nil
		},
	}
	bindFields(cmd, &fields)
	return cmd
}

func (a *app) postCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id>",
		Short: "Mark a request as helped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, changed, err := a.postService.ClosePost(id)
			if err != nil {
				return friendly(err)
			}
			if !changed {
				warning.Fprintln(cmd.OutOrStdout(), "Request was already closed")
				return nil
			}
			printSuccess(cmd.OutOrStdout(), services.MsgClosed)
			return nil
		},
	}
}

func (a *app) postDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				post, err := a.postService.GetPost(id)
				if err != nil {
					return friendly(err)
				}
				return fmt.Errorf("%s Re-run with --yes", deleteQuestion(post))
			}
			if err := a.postService.DeletePost(id); err != nil {
				return friendly(err)
			}
			printSuccess(cmd.OutOrStdout(), services.MsgDeleted)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func deleteQuestion(post models.Post) string {
	if post.Closed {
		return "Are you sure you want to delete this closed request?"
	}
	return "Are you sure you want to delete this request?"
}
