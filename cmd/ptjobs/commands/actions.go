package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ptjobs/internal/domain"
)

func applyCmd() *cobra.Command {
	var resume int64
	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply to a job post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := parseID(args[0], "job")
			if err != nil {
				return err
			}
			resumeID := domain.ID(resume)
			if resumeID == 0 {
				// Fall back to the first uploaded resume.
				resumes, err := appCtx.Catalog.Resumes(cmd.Context())
				if err != nil {
					return err
				}
				if len(resumes) == 0 {
					return errors.New("no resume on file; pass --resume")
				}
				resumeID = resumes[0].ID
			}
			a, err := appCtx.Catalog.Apply(cmd.Context(), jobID, resumeID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied (application %d, %s)\n", a.ID, a.Status)
			return nil
		},
	}
	cmd.Flags().Int64Var(&resume, "resume", 0, "resume id (default: your first resume)")
	return cmd
}

func followCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <company-id>",
		Short: "Follow a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "company")
			if err != nil {
				return err
			}
			f, err := appCtx.Catalog.Follow(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Following company %d (follow %d)\n", f.Company, f.ID)
			return nil
		},
	}
}

func unfollowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <follow-id>",
		Short: "Stop following a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "follow")
			if err != nil {
				return err
			}
			if err := appCtx.Catalog.Unfollow(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Unfollowed")
			return nil
		},
	}
}

func newPostCmd() *cobra.Command {
	var (
		post     domain.JobPost
		salary   string
		category int64
	)
	cmd := &cobra.Command{
		Use:   "new-post",
		Short: "Publish a job post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			post.Salary = domain.Amount(salary)
			post.Category = domain.ID(category)
			created, err := appCtx.Catalog.CreatePost(cmd.Context(), post)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published job post %d\n", created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&post.Name, "name", "", "job title")
	cmd.Flags().StringVar(&post.Description, "description", "", "description")
	cmd.Flags().StringVar(&salary, "salary", "", "hourly salary")
	cmd.Flags().StringVar(&post.Address, "address", "", "work address")
	cmd.Flags().StringVar(&post.Deadline, "deadline", "", "application deadline (YYYY-MM-DD)")
	cmd.Flags().IntVar(&post.Vacancy, "vacancy", 1, "number of openings")
	cmd.Flags().Int64Var(&category, "category", 0, "category id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
