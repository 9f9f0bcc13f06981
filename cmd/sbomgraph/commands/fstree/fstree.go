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

package fstree

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/venslabs/sbomgraph/cmd/sbomgraph/commands/internal/input"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fstree [flags] INPUT",
		Short:   "Render the filesystem graph of an SBOM in Graphviz DOT",
		Example: `  sbomgraph fstree image.json | dot -Tsvg > fstree.svg`,
		Args:    cobra.ExactArgs(1),
		RunE:    action,
	}

	flags := cmd.Flags()
	flags.String("input-format", input.Auto, fmt.Sprintf("Input format (%v)", input.Formats))
	flags.StringP("output", "o", "", "Output file (default stdout)")

	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	inputFormat, _ := flags.GetString("input-format")
	outputPath, _ := flags.GetString("output")

	s, err := input.Load(cmd.Context(), args[0], inputFormat)
	if err != nil {
		return err
	}

	if outputPath == "" {
		return s.FSTree().WriteDOT(cmd.OutOrStdout())
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := s.FSTree().WriteDOT(f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return f.Close()
}
