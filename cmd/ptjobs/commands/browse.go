package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ptjobs/internal/domain"
	nav "ptjobs/internal/services/navigation"
)

func tabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List the screens available to your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			topo := appCtx.Navigator.Topology()
			role := appCtx.Navigator.Role()
			fmt.Fprintf(out, "Tabs: %s\n", joinDest(topo.Tabs(role)))
			if role.Valid() {
				fmt.Fprintf(out, "Screens: %s\n", joinDest(topo.Shared()))
			}
			return nil
		},
	}
}

func joinDest(ds []domain.Destination) string {
	s := make([]string, len(ds))
	for i, d := range ds {
		s[i] = d.String()
	}
	return strings.Join(s, ", ")
}

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Navigate screens interactively",
		Long: `Navigate the screens of your role. Commands:

  open <screen> [key=value...]   push a screen, e.g. open JobDetail jobId=3
  tab <screen>                   switch tab and clear the back stack
  back                           return to the previous screen
  where                          show the back stack
  login <user> <password>        sign in; continues to Login's next= screen
  logout                         sign out
  help, quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func repl(ctx context.Context, in io.Reader, out io.Writer) error {
	show(ctx, out, appCtx.Navigator.Current())
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "ptjobs> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		done, err := step(ctx, out, fields[0], fields[1:])
		if err != nil {
			fmt.Fprintln(out, "error:", userMessage(err))
		}
		if done {
			return nil
		}
	}
}

// step runs one browse command and reports whether the loop should end.
func step(ctx context.Context, out io.Writer, verb string, args []string) (bool, error) {
	n := appCtx.Navigator
	switch verb {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(out, "open <screen> [k=v...] | tab <screen> | back | where | login <u> <p> | logout | quit")
		fmt.Fprintf(out, "tabs: %s\n", joinDest(n.Topology().Tabs(n.Role())))
	case "open":
		if len(args) == 0 {
			return false, errors.New("usage: open <screen> [key=value...]")
		}
		params, err := parseParams(args[1:])
		if err != nil {
			return false, err
		}
		if err := n.NavigateTo(domain.Destination(args[0]), params); err != nil {
			return false, err
		}
		show(ctx, out, n.Current())
	case "tab":
		if len(args) != 1 {
			return false, errors.New("usage: tab <screen>")
		}
		if err := n.SelectTab(domain.Destination(args[0])); err != nil {
			return false, err
		}
		show(ctx, out, n.Current())
	case "back":
		if !n.GoBack() {
			fmt.Fprintln(out, "already at the root")
			return false, nil
		}
		show(ctx, out, n.Current())
	case "where":
		for i, node := range n.History() {
			fmt.Fprintf(out, "%d ", i)
			printWhere(out, node)
		}
	case "login":
		if len(args) != 2 {
			return false, errors.New("usage: login <user> <password>")
		}
		cur := n.Current()
		var target domain.Destination
		if cur.Destination == nav.Login {
			target = domain.Destination(cur.Params[nav.ParamNext])
		}
		creds := domain.Credentials{Username: args[0], Password: args[1]}
		if err := appCtx.LoginAndContinue(ctx, creds, target); err != nil {
			return false, err
		}
		printSession(out, appCtx.Session.Snapshot())
		show(ctx, out, n.Current())
	case "logout":
		if err := appCtx.Session.Logout(ctx); err != nil {
			return false, err
		}
		show(ctx, out, n.Current())
	default:
		return false, fmt.Errorf("unknown command %q (try help)", verb)
	}
	return false, nil
}

func parseParams(args []string) (domain.Params, error) {
	if len(args) == 0 {
		return nil, nil
	}
	p := make(domain.Params, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad parameter %q, want key=value", a)
		}
		p[k] = v
	}
	return p, nil
}

// show renders the screen for node. Load failures are printed inline so the
// navigator stays where it is.
func show(ctx context.Context, out io.Writer, node domain.Node) {
	printWhere(out, node)
	if err := render(ctx, out, node); err != nil {
		fmt.Fprintln(out, "error:", userMessage(err))
	}
}

func render(ctx context.Context, out io.Writer, node domain.Node) error {
	c := appCtx.Catalog
	id := func(key string) domain.ID {
		v, _ := domain.ParseID(node.Params[key])
		return v
	}
	switch node.Destination {
	case nav.Login:
		fmt.Fprintln(out, "Sign in with: login <user> <password>")
	case nav.Register:
		fmt.Fprintln(out, "Create an account with: ptjobs register <user> --role candidate|company")
	case nav.Home:
		h, err := c.Home(ctx)
		if err != nil {
			return err
		}
		printHome(out, h)
	case nav.Jobs:
		jobs, err := c.Jobs(ctx, domain.ListQuery{})
		if err != nil {
			return err
		}
		printJobs(out, jobs)
	case nav.Companies:
		rows, err := c.Following(ctx)
		if err != nil {
			return err
		}
		printFollowing(out, rows)
	case nav.Posts:
		posts, err := c.Posts(ctx, domain.ListQuery{})
		if err != nil {
			return err
		}
		printJobs(out, posts)
	case nav.Chat:
		fmt.Fprintln(out, "Chat is not available yet")
	case nav.Profile:
		printProfile(out, appCtx.Session.Snapshot())
	case nav.JobDetail:
		v, err := c.Job(ctx, id(nav.ParamJobID))
		if err != nil {
			return err
		}
		printJob(out, v)
	case nav.CompanyDetail:
		v, err := c.Company(ctx, id(nav.ParamCompanyID))
		if err != nil {
			return err
		}
		printCompany(out, v)
	case nav.CandidateDetail:
		v, err := c.Candidate(ctx, id(nav.ParamCandidateID))
		if err != nil {
			return err
		}
		printCandidate(out, v)
	case nav.PostDetail:
		v, err := c.Post(ctx, id(nav.ParamPostID))
		if err != nil {
			return err
		}
		printPost(out, v)
	case nav.Notifications:
		ns, err := c.Notifications(ctx)
		if err != nil {
			return err
		}
		printNotifications(out, ns)
	}
	return nil
}
