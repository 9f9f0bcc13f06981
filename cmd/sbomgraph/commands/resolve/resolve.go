// Copyright 2026 venslabs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolve

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/venslabs/sbomgraph/cmd/sbomgraph/commands/internal/input"
	"github.com/venslabs/sbomgraph/pkg/config"
	"github.com/venslabs/sbomgraph/pkg/envutil"
	"github.com/venslabs/sbomgraph/pkg/outputhandler"
	"github.com/venslabs/sbomgraph/pkg/relationships"
	"github.com/venslabs/sbomgraph/pkg/sbom"
	"golang.org/x/sync/errgroup"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "resolve [flags] INPUT...",
		Short:                 "Establish Uses relationships from import metadata",
		Long:                  "Load SBOM documents, resolve PE and Java imports to the software entries that supply them, and write the result.",
		Example:               Example(),
		Args:                  cobra.MinimumNArgs(1),
		RunE:                  action,
		DisableFlagsInUseLine: true,
	}

	flags := cmd.Flags()
	flags.String("config-file", "", "Path to config.yaml file")
	flags.String("input-format", input.Auto, fmt.Sprintf("Input format (%v)", input.Formats))
	flags.String("output-format", envutil.String("SBOMGRAPH_OUTPUT_FORMAT", outputhandler.FormatJSON),
		fmt.Sprintf("Output format (%v) [$SBOMGRAPH_OUTPUT_FORMAT]", outputhandler.Formats))
	flags.String("output-dir", "", "Write one file per input to this directory instead of stdout")
	flags.Int("jobs", envutil.Int("SBOMGRAPH_JOBS", runtime.NumCPU()), "Number of documents processed concurrently [$SBOMGRAPH_JOBS]")

	return cmd
}

func Example() string {
	return "sbomgraph resolve --config-file config.yaml --output-format table image.json"
}

func action(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config-file")
	inputFormat, _ := flags.GetString("input-format")
	outputFormat, _ := flags.GetString("output-format")
	outputDir, _ := flags.GetString("output-dir")
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return err
	}
	if jobs < 1 {
		return fmt.Errorf("jobs must be positive, got %d", jobs)
	}
	if !slices.Contains(outputhandler.Formats, outputFormat) {
		return fmt.Errorf("unknown output format %q (expected one of %v)", outputFormat, outputhandler.Formats)
	}

	// Fail on a bad config before decoding anything.
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config file %q: %w", configPath, err)
		}
	}
	if _, err := relationships.Default(cfg); err != nil {
		return fmt.Errorf("invalid config file %q: %w", configPath, err)
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return err
		}
	}

	results := make([]*sbom.SBOM, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range args {
		g.Go(func() error {
			s, err := input.Load(gctx, path, inputFormat)
			if err != nil {
				return err
			}
			// Each worker owns its resolvers so that the Java export index
			// is never shared between stores.
			resolvers, err := relationships.Default(cfg)
			if err != nil {
				return err
			}
			added, err := relationships.Establish(gctx, s, resolvers...)
			if err != nil {
				return err
			}
			slog.InfoContext(gctx, "Resolved relationships", "input", path,
				"software", len(s.Software()), "added", added)
			if outputDir != "" {
				return writeFile(s, outputFormat, filepath.Join(outputDir, outputName(path, outputFormat)))
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if outputDir != "" {
		return nil
	}

	h, err := outputhandler.New(outputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	for _, s := range results {
		if err := h.HandleSBOM(s); err != nil {
			return err
		}
	}
	return h.Close()
}

func writeFile(s *sbom.SBOM, format, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close() //nolint:errcheck
	h, err := outputhandler.New(format, w)
	if err != nil {
		return err
	}
	if err := h.HandleSBOM(s); err != nil {
		return err
	}
	if err := h.Close(); err != nil {
		return err
	}
	return w.Close()
}

// outputName derives the output file name from the input path:
// image.cdx.json resolved to table becomes image.txt.
func outputName(path, format string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".cdx.json", ".json"} {
		if trimmed, ok := strings.CutSuffix(base, ext); ok {
			base = trimmed
			break
		}
	}
	return base + outputhandler.Extension(format)
}
