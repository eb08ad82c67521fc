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
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/retr0h/bazaar/internal/authtoken"
	"github.com/retr0h/bazaar/internal/cli"
)

// TokenGenerator generates signed JWT tokens.
type TokenGenerator interface {
	GenerateWithTTL(
		signingKey string,
		roles []string,
		subject string,
		permissions []string,
		ttl time.Duration,
	) (string, error)
}

// tokenGenerateCmd represents the tokenGenerate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token",
	Long: `Generate a signed API token for a subject without logging in.

The subject is recorded as the actor of every audited call made with the
token, so it should be the caller's email.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Server.Security.SigningKey
		roles, _ := cmd.Flags().GetStringSlice("roles")
		subject, _ := cmd.Flags().GetString("subject")
		permissions, _ := cmd.Flags().GetStringSlice("permissions")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		var tm TokenGenerator = authtoken.New(logger)
		tokin, err := tm.GenerateWithTTL(signingKey, roles, subject, permissions, ttl)
		if err != nil {
			cli.LogFatal(logger, "failed to generate token", err)
		}

		logger.Info(
			"generated token",
			slog.String("token", tokin),
			slog.String("roles", strings.Join(roles, ",")),
			slog.String("subject", subject),
			slog.Duration("ttl", ttl),
		)
		if len(permissions) > 0 {
			logger.Info(
				"token permissions",
				slog.String("permissions", strings.Join(permissions, ",")),
			)
		}
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)
	allowedRoles := authtoken.GenerateAllowedRoles(authtoken.RoleHierarchy)
	usage := fmt.Sprintf("Roles for the token (allowed: %s)", strings.Join(allowedRoles, ", "))

	tokenGenerateCmd.PersistentFlags().StringSliceP("roles", "r", []string{}, usage)
	tokenGenerateCmd.PersistentFlags().StringP("subject", "u", "", "Subject (email) for the token")
	tokenGenerateCmd.PersistentFlags().
		StringSliceP("permissions", "p", []string{}, "Direct permissions, overriding roles")
	tokenGenerateCmd.PersistentFlags().
		Duration("ttl", authtoken.DefaultTTL, "How long the token stays valid")

	_ = tokenGenerateCmd.MarkPersistentFlagRequired("roles")
	_ = tokenGenerateCmd.MarkPersistentFlagRequired("subject")
}
