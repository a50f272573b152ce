package commands

import (
	"github.com/spf13/cobra"

	"ptjobs/internal/domain"
)

func jobsCmd() *cobra.Command {
	var (
		q                 domain.ListQuery
		category, company int64
	)
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List job posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Category, q.Company = domain.ID(category), domain.ID(company)
			jobs, err := appCtx.Catalog.Jobs(cmd.Context(), q)
			if err != nil {
				return err
			}
			printJobs(cmd.OutOrStdout(), jobs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "q", "", "search text")
	cmd.Flags().Int64Var(&category, "category", 0, "category id")
	cmd.Flags().Int64Var(&company, "company", 0, "company id")
	cmd.Flags().IntVar(&q.Page, "page", 0, "page number")
	return cmd
}

func jobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "job <id>",
		Short: "Show a job post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "job")
			if err != nil {
				return err
			}
			v, err := appCtx.Catalog.Job(cmd.Context(), id)
			if err != nil {
				return err
			}
			printJob(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func companyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "company <id>",
		Short: "Show a company with its jobs and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "company")
			if err != nil {
				return err
			}
			v, err := appCtx.Catalog.Company(cmd.Context(), id)
			if err != nil {
				return err
			}
			printCompany(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func candidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "candidate <id>",
		Short: "Show a candidate with their reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "candidate")
			if err != nil {
				return err
			}
			v, err := appCtx.Catalog.Candidate(cmd.Context(), id)
			if err != nil {
				return err
			}
			printCandidate(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func postCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post <id>",
		Short: "Show a job post with the applications it received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "post")
			if err != nil {
				return err
			}
			v, err := appCtx.Catalog.Post(cmd.Context(), id)
			if err != nil {
				return err
			}
			printPost(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func notificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "Show application status updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := appCtx.Catalog.Notifications(cmd.Context())
			if err != nil {
				return err
			}
			printNotifications(cmd.OutOrStdout(), ns)
			return nil
		},
	}
}
