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
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/retr0h/bazaar/internal/audit/export"
	"github.com/retr0h/bazaar/internal/cli"
	"github.com/retr0h/bazaar/internal/client"
)

const auditExportBatchSize = 100

var (
	auditExportOutput    string
	auditExportType      string
	auditExportUserEmail string
)

// clientAuditExportCmd represents the clientAuditExport command.
var clientAuditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit log entries to a file",
	Long: `Export audit log entries to a file for long-term retention, one JSON
document per line.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		var exporter export.Exporter
		switch auditExportType {
		case "file":
			exporter = export.NewFileExporter(auditExportOutput)
		default:
			cli.LogFatal(
				logger,
				"unsupported export type",
				fmt.Errorf("type %q is not supported, use \"file\"", auditExportType),
			)
		}

		result, err := export.Run(
			ctx,
			logger,
			client.AuditPages(handler, auditExportUserEmail),
			exporter,
			auditExportBatchSize,
			func(exported int, total int) {
				logger.Debug("export progress", "exported", exported, "total", total)
			},
		)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) {
				cli.HandleError(apiErr, logger)
				return
			}
			cli.LogFatal(logger, "export failed", err)
		}

		fmt.Println()
		cli.PrintKV(
			"Exported", strconv.Itoa(result.ExportedEntries),
			"Total", strconv.Itoa(result.TotalEntries),
		)
		cli.PrintKV("Output", auditExportOutput)
	},
}

func init() {
	clientAuditCmd.AddCommand(clientAuditExportCmd)
	clientAuditExportCmd.Flags().
		StringVar(&auditExportOutput, "output", "", "Output file path (required)")
	clientAuditExportCmd.Flags().
		StringVar(&auditExportType, "type", "file", "Export backend type")
	clientAuditExportCmd.Flags().
		StringVar(&auditExportUserEmail, "user-email", "", "Only entries performed by this email")
	_ = clientAuditExportCmd.MarkFlagRequired("output")
}
