// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retr0h/bazaar/internal/cli"
)

// clientAuthCmd represents the clientAuth command.
var clientAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Log in and out",
}

// clientAuthLoginCmd represents the clientAuthLogin command.
var clientAuthLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange credentials for a token",
	Long: `Log in with an email and password. The attempt is recorded in the audit
trail whether or not it succeeds. Prints the issued token, which can be
set as api.client.security.bearer_token.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()
		email, _ := cmd.Flags().GetString("email")

		password, err := readPassword()
		if err != nil {
			cli.LogFatal(logger, "failed to read password", err)
		}

		session, err := handler.Login(ctx, email, password)
		if err != nil {
			cli.HandleError(err, logger)
			return
		}

		if printJSON(session) {
			return
		}

		fmt.Println()
		cli.PrintKV("Token", session.Token)
		cli.PrintKV("Expires", cli.FormatTime(session.ExpiresAt))
	},
}

// clientAuthLogoutCmd represents the clientAuthLogout command.
var clientAuthLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session of the configured token",
	Run: func(cmd *cobra.Command, _ []string) {
		resp, err := handler.Logout(cmd.Context())
		if err != nil {
			cli.HandleError(err, logger)
			return
		}

		if printJSON(resp) {
			return
		}

		fmt.Println()
		cli.PrintKV("Logged out", resp.Email)
	},
}

func init() {
	clientCmd.AddCommand(clientAuthCmd)
	clientAuthCmd.AddCommand(clientAuthLoginCmd)
	clientAuthCmd.AddCommand(clientAuthLogoutCmd)

	clientAuthLoginCmd.Flags().StringP("email", "e", "", "Login email")
	_ = clientAuthLoginCmd.MarkFlagRequired("email")
}
