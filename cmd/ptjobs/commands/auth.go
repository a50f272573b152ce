package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ptjobs/internal/domain"
)

// readLine prompts on out and reads one trimmed line from in.
func readLine(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func loginCmd() *cobra.Command {
	var password, next string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw := password
			if pw == "" {
				var err error
				if pw, err = readLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: "); err != nil {
					return err
				}
			}
			creds := domain.Credentials{Username: args[0], Password: pw}
			if err := appCtx.LoginAndContinue(cmd.Context(), creds, domain.Destination(next)); err != nil {
				return err
			}
			printSession(cmd.OutOrStdout(), appCtx.Session.Snapshot())
			printWhere(cmd.OutOrStdout(), appCtx.Navigator.Current())
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&next, "next", "", "screen to open after signing in")
	return cmd
}

func registerCmd() *cobra.Command {
	var (
		reg            domain.Registration
		password, next string
	)
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg.Username = args[0]
			reg.Password = password
			if reg.Password == "" {
				var err error
				if reg.Password, err = readLine(cmd.InOrStdin(), cmd.OutOrStdout(), "Password: "); err != nil {
					return err
				}
			}
			if err := appCtx.RegisterAndContinue(cmd.Context(), reg, domain.Destination(next)); err != nil {
				return err
			}
			printSession(cmd.OutOrStdout(), appCtx.Session.Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&reg.Role, "role", "candidate", "account role: candidate or company")
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&next, "next", "", "screen to open after signing in")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printSession(cmd.OutOrStdout(), appCtx.Session.Snapshot())
			return nil
		},
	}
}
