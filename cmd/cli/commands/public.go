package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GetPublicCmd returns the public command group. Public commands hit the
// client-facing routes and never send session headers.
func GetPublicCmd() *cobra.Command {
	return publicCmd
}

func init() {
	sendFeedbackCmd.Flags().StringVar(&feedbackMessage, "message", "", "Feedback message (required)")

	publicCmd.AddCommand(viewProjectCmd)
	publicCmd.AddCommand(sendFeedbackCmd)
}

var feedbackMessage string

var publicCmd = &cobra.Command{
	Use:   "public",
	Short: "Client-facing project commands",
}

var viewProjectCmd = &cobra.Command{
	Use:   "view <slug>",
	Short: "View a project by its share slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := apiClient.GetPublicProject(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error fetching project: %w", err)
		}
		return printJSON(resp)
	},
}

var sendFeedbackCmd = &cobra.Command{
	Use:   "send-feedback <slug>",
	Short: "Send feedback on a project as the client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if feedbackMessage == "" {
			return fmt.Errorf("--message is required")
		}

		resp, err := apiClient.AddPublicFeedback(cmd.Context(), args[0], feedbackMessage)
		if err != nil {
			return fmt.Errorf("error sending feedback: %w", err)
		}
		return printJSON(resp)
	},
}
