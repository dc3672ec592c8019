package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// GetFeedbackCmd returns the feedback command group
func GetFeedbackCmd() *cobra.Command {
	return feedbackCmd
}

func init() {
	feedbackCmd.AddCommand(listFeedbackCmd)
	feedbackCmd.AddCommand(markReadCmd)
}

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Manage project feedback",
}

var listFeedbackCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List a project's feedback, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := getSession(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		resp, err := apiClient.ListFeedback(cmd.Context(), sess, id)
		if err != nil {
			return fmt.Errorf("error listing feedback: %w", err)
		}
		return printJSON(resp)
	},
}

var markReadCmd = &cobra.Command{
	Use:   "mark-read <feedback-id>",
	Short: "Mark a feedback entry as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := getSession(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := apiClient.MarkFeedbackRead(cmd.Context(), sess, id); err != nil {
			return fmt.Errorf("error marking feedback read: %w", err)
		}
		fmt.Printf("Feedback %d marked read\n", id)
		return nil
	},
}

// parseID parses a positional numeric ID argument.
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}
