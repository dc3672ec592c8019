package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/syncflowhq/syncflow/internal/types"
)

// Flag names
const (
	flagTitle       = "title"
	flagClient      = "client"
	flagClientEmail = "client-email"
	flagTemplate    = "template"
	flagDueDate     = "due-date"
	flagProgress    = "progress"
	flagFocus       = "focus"
	flagLiveLink    = "live-link"
	flagStatus      = "status"
	flagName        = "name"
	flagMilestoneID = "milestone-id"
)

// GetProjectsCmd returns the projects command group
func GetProjectsCmd() *cobra.Command {
	return projectsCmd
}

func init() {
	projectsCmd.AddCommand(createProjectCmd)
	projectsCmd.AddCommand(getProjectCmd)
	projectsCmd.AddCommand(listProjectsCmd)
	projectsCmd.AddCommand(updateStatusCmd)
	projectsCmd.AddCommand(deleteProjectCmd)
	projectsCmd.AddCommand(addMilestoneCmd)
	projectsCmd.AddCommand(toggleMilestoneCmd)
	projectsCmd.AddCommand(removeMilestoneCmd)
	projectsCmd.AddCommand(applyTemplateCmd)

	// Flags for create
	createProjectCmd.Flags().StringP(flagTitle, "t", "", "Project title")
	createProjectCmd.Flags().StringP(flagClient, "c", "", "Client name")
	createProjectCmd.Flags().String(flagClientEmail, "", "Client email for update notifications")
	createProjectCmd.Flags().String(flagTemplate, "", "Milestone template key (web-dev, app-dev, design, blank)")
	createProjectCmd.Flags().String(flagDueDate, "", "Optional due date (YYYY-MM-DD or RFC 3339)")
	for _, f := range []string{flagTitle, flagClient} {
		if err := createProjectCmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Errorf("failed to mark %s flag as required for create project command: %w", f, err))
		}
	}

	// Flags for update-status
	updateStatusCmd.Flags().IntP(flagProgress, "p", 0, "Overall progress percentage")
	updateStatusCmd.Flags().String(flagFocus, "", "Current focus text")
	updateStatusCmd.Flags().String(flagLiveLink, "", "Live demo / resource link")
	updateStatusCmd.Flags().String(flagStatus, "", "Project status (active, on-hold, completed)")

	// Flags for milestone commands
	addMilestoneCmd.Flags().StringP(flagName, "n", "", "Milestone name")
	if err := addMilestoneCmd.MarkFlagRequired(flagName); err != nil {
		panic(fmt.Errorf("failed to mark name flag as required for add milestone command: %w", err))
	}
	toggleMilestoneCmd.Flags().Int64P(flagMilestoneID, "m", 0, "Milestone ID")
	removeMilestoneCmd.Flags().Int64P(flagMilestoneID, "m", 0, "Milestone ID")
	for _, cmd := range []*cobra.Command{toggleMilestoneCmd, removeMilestoneCmd} {
		if err := cmd.MarkFlagRequired(flagMilestoneID); err != nil {
			panic(fmt.Errorf("failed to mark milestone-id flag as required: %w", err))
		}
	}

	applyTemplateCmd.Flags().String(flagTemplate, "", "Milestone template key; empty applies the default milestones")
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var createProjectCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := getSession(cmd)
		if err != nil {
			return err
		}
		title, err := cmd.Flags().GetString(flagTitle)
		if err != nil {
			return fmt.Errorf("error getting title flag: %w", err)
		}
		clientName, err := cmd.Flags().GetString(flagClient)
		if err != nil {
			return fmt.Errorf("error getting client flag: %w", err)
		}
		clientEmail, err := cmd.Flags().GetString(flagClientEmail)
		if err != nil {
			return fmt.Errorf("error getting client-email flag: %w", err)
		}
		template, err := cmd.Flags().GetString(flagTemplate)
		if err != nil {
			return fmt.Errorf("error getting template flag: %w", err)
		}
		rawDueDate, err := cmd.Flags().GetString(flagDueDate)
		if err != nil {
			return fmt.Errorf("error getting due-date flag: %w", err)
		}
		var dueDate *time.Time
		if rawDueDate != "" {
			parsed, err := parseDueDate(rawDueDate)
			if err != nil {
				return err
			}
			dueDate = &parsed
		}

		resp, err := apiClient.CreateProject(cmd.Context(), sess, &types.CreateProjectRequest{
			Title:       title,
			Client:      clientName,
			ClientEmail: clientEmail,
			Template:    template,
			DueDate:     dueDate,
		})
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}
		return printJSON(resp)
	},
}

var getProjectCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Get a project",
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

		project, err := apiClient.GetProject(cmd.Context(), sess, id)
		if err != nil {
			return fmt.Errorf("error getting project: %w", err)
		}
		return printJSON(project)
	},
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := getSession(cmd)
		if err != nil {
			return err
		}

		projects, err := apiClient.ListProjects(cmd.Context(), sess)
		if err != nil {
			return fmt.Errorf("error listing projects: %w", err)
		}
		return printJSON(projects)
	},
}

var updateStatusCmd = &cobra.Command{
	Use:   "update-status <project-id>",
	Short: "Save progress, focus, live link, and status in one write",
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
		progress, err := cmd.Flags().GetInt(flagProgress)
		if err != nil {
			return fmt.Errorf("error getting progress flag: %w", err)
		}
		focus, err := cmd.Flags().GetString(flagFocus)
		if err != nil {
			return fmt.Errorf("error getting focus flag: %w", err)
		}
		liveLink, err := cmd.Flags().GetString(flagLiveLink)
		if err != nil {
			return fmt.Errorf("error getting live-link flag: %w", err)
		}
		status, err := cmd.Flags().GetString(flagStatus)
		if err != nil {
			return fmt.Errorf("error getting status flag: %w", err)
		}

		project, err := apiClient.UpdateStatus(cmd.Context(), sess, id, &types.UpdateStatusRequest{
			Progress:     progress,
			CurrentFocus: focus,
			LiveLink:     liveLink,
			Status:       status,
		})
		if err != nil {
			return fmt.Errorf("error updating status: %w", err)
		}
		return printJSON(project)
	},
}

var deleteProjectCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project",
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

		if err := apiClient.DeleteProject(cmd.Context(), sess, id); err != nil {
			return fmt.Errorf("error deleting project: %w", err)
		}
		fmt.Printf("Project %d deleted\n", id)
		return nil
	},
}

var addMilestoneCmd = &cobra.Command{
	Use:   "add-milestone <project-id>",
	Short: "Append a milestone to the project timeline",
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
		name, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return fmt.Errorf("error getting name flag: %w", err)
		}

		project, err := apiClient.AddMilestone(cmd.Context(), sess, id, name)
		if err != nil {
			return fmt.Errorf("error adding milestone: %w", err)
		}
		return printJSON(project.Timeline)
	},
}

var toggleMilestoneCmd = &cobra.Command{
	Use:   "toggle-milestone <project-id>",
	Short: "Toggle a milestone's completed flag",
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
		milestoneID, err := cmd.Flags().GetInt64(flagMilestoneID)
		if err != nil {
			return fmt.Errorf("error getting milestone-id flag: %w", err)
		}

		project, err := apiClient.ToggleMilestone(cmd.Context(), sess, id, milestoneID)
		if err != nil {
			return fmt.Errorf("error toggling milestone: %w", err)
		}
		return printJSON(project.Timeline)
	},
}

var removeMilestoneCmd = &cobra.Command{
	Use:   "remove-milestone <project-id>",
	Short: "Remove a milestone from the timeline",
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
		milestoneID, err := cmd.Flags().GetInt64(flagMilestoneID)
		if err != nil {
			return fmt.Errorf("error getting milestone-id flag: %w", err)
		}

		project, err := apiClient.RemoveMilestone(cmd.Context(), sess, id, milestoneID)
		if err != nil {
			return fmt.Errorf("error removing milestone: %w", err)
		}
		return printJSON(project.Timeline)
	},
}

var applyTemplateCmd = &cobra.Command{
	Use:   "apply-template <project-id>",
	Short: "Replace the timeline with a template's milestones",
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
		template, err := cmd.Flags().GetString(flagTemplate)
		if err != nil {
			return fmt.Errorf("error getting template flag: %w", err)
		}

		project, err := apiClient.ApplyTemplate(cmd.Context(), sess, id, &types.ApplyTemplateRequest{
			Template: template,
		})
		if err != nil {
			return fmt.Errorf("error applying template: %w", err)
		}
		return printJSON(project.Timeline)
	},
}

// parseDueDate accepts a date-only value or a full RFC 3339 timestamp.
func parseDueDate(raw string) (time.Time, error) {
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: use YYYY-MM-DD or RFC 3339", raw)
	}
	return ts, nil
}

func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}
