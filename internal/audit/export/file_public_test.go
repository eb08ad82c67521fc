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

package export_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/retr0h/bazaar/internal/audit"
	"github.com/retr0h/bazaar/internal/audit/export"
)

type FileExporterPublicTestSuite struct {
	suite.Suite

	ctx    context.Context
	tmpDir string
}

func (suite *FileExporterPublicTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.tmpDir = suite.T().TempDir()
}

func (suite *FileExporterPublicTestSuite) newEntry(
	actor string,
) audit.Entry {
	subject := "Product with ID - 7 deleted success"
	return audit.Entry{
		ID:                 7,
		CreatedAt:          time.Date(2026, 2, 21, 10, 30, 0, 0, time.UTC),
		Actor:              actor,
		Action:             audit.ActionDeleteProduct,
		Outcome:            audit.OutcomeSuccess,
		SubjectDescription: &subject,
	}
}

func (suite *FileExporterPublicTestSuite) TestOpenWriteClose() {
	tests := []struct {
		name         string
		actors       []string
		validateFunc func(path string)
	}{
		{
			name:   "when single entry writes valid JSONL",
			actors: []string{"alice@example.com"},
			validateFunc: func(path string) {
				lines := suite.readLines(path)
				suite.Require().Len(lines, 1)

				var entry audit.Entry
				suite.NoError(json.Unmarshal([]byte(lines[0]), &entry))
				suite.Equal("alice@example.com", entry.Actor)
				suite.Require().NotNil(entry.SubjectDescription)
				suite.Equal("Product with ID - 7 deleted success", *entry.SubjectDescription)
			},
		},
		{
			name:   "when multiple entries writes valid JSONL",
			actors: []string{"alice@example.com", "bob@example.com", "charlie@example.com"},
			validateFunc: func(path string) {
				lines := suite.readLines(path)
				suite.Require().Len(lines, 3)

				for i, actor := range []string{"alice@example.com", "bob@example.com", "charlie@example.com"} {
					var entry audit.Entry
					suite.NoError(json.Unmarshal([]byte(lines[i]), &entry))
					suite.Equal(actor, entry.Actor)
				}
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			path := filepath.Join(suite.tmpDir, tc.name+".jsonl")
			sut := export.NewFileExporter(path)

			suite.Require().NoError(sut.Open(suite.ctx))
			for _, actor := range tc.actors {
				suite.Require().NoError(sut.Write(suite.ctx, suite.newEntry(actor)))
			}
			suite.Require().NoError(sut.Close(suite.ctx))

			tc.validateFunc(path)
		})
	}
}

func (suite *FileExporterPublicTestSuite) TestErrors() {
	tests := []struct {
		name         string
		run          func() error
		validateFunc func(err error)
	}{
		{
			name: "when path is invalid open returns error",
			run: func() error {
				return export.NewFileExporter("/nonexistent/dir/file.jsonl").Open(suite.ctx)
			},
			validateFunc: func(err error) {
				suite.ErrorContains(err, "opening export file")
			},
		},
		{
			name: "when not opened write returns error",
			run: func() error {
				return export.NewFileExporter("unused.jsonl").Write(suite.ctx, suite.newEntry("a@example.com"))
			},
			validateFunc: func(err error) {
				suite.ErrorContains(err, "exporter not opened")
			},
		},
		{
			name: "when not opened close returns error",
			run: func() error {
				return export.NewFileExporter("unused.jsonl").Close(suite.ctx)
			},
			validateFunc: func(err error) {
				suite.ErrorContains(err, "exporter not opened")
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			tc.validateFunc(tc.run())
		})
	}
}

func (suite *FileExporterPublicTestSuite) readLines(
	path string,
) []string {
	f, err := os.Open(path)
	suite.Require().NoError(err)
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	suite.Require().NoError(scanner.Err())

	return lines
}

func TestFileExporterPublicTestSuite(t *testing.T) {
	suite.Run(t, new(FileExporterPublicTestSuite))
}
