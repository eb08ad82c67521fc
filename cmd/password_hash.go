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
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/retr0h/bazaar/internal/cli"
	"github.com/retr0h/bazaar/internal/user"
)

// passwordCmd represents the password command.
var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Manage login passwords",
}

// passwordHashCmd represents the passwordHash command.
var passwordHashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Hash a password for api.server.users",
	Long: `Read a password and print its bcrypt hash, suitable for the
password_hash field of a configured user. The password is read from the
terminal without echo, or from stdin when piped.
`,
	Run: func(_ *cobra.Command, _ []string) {
		password, err := readPassword()
		if err != nil {
			cli.LogFatal(logger, "failed to read password", err)
		}

		hash, err := user.HashPassword(password)
		if err != nil {
			cli.LogFatal(logger, "failed to hash password", err)
		}

		fmt.Println(hash)
	},
}

func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.AddCommand(passwordHashCmd)
}
