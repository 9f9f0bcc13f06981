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

package lookup

import (
	"fmt"

	"github.com/aquasecurity/table"
	"github.com/spf13/cobra"
	"github.com/venslabs/sbomgraph/cmd/sbomgraph/commands/internal/input"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lookup [flags] INPUT PATH...",
		Short:   "Show which software entry is installed at a path",
		Long:    "Resolve each PATH through the filesystem graph of INPUT, following symlinks, and print the owning software entry.",
		Example: `  sbomgraph lookup --case-insensitive image.json 'C:\Program Files\App\zlib1.dll' /usr/lib/libc.so`,
		Args:    cobra.MinimumNArgs(2),
		RunE:    action,
	}

	flags := cmd.Flags()
	flags.Bool("case-insensitive", false, "Ignore path case, as on Windows")
	flags.String("input-format", input.Auto, fmt.Sprintf("Input format (%v)", input.Formats))

	return cmd
}

func action(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	caseInsensitive, _ := flags.GetBool("case-insensitive")
	inputFormat, _ := flags.GetString("input-format")

	s, err := input.Load(cmd.Context(), args[0], inputFormat)
	if err != nil {
		return err
	}

	t := table.New(cmd.OutOrStdout())
	t.SetHeaders("Path", "UUID", "Name")
	missing := 0
	for _, p := range args[1:] {
		sw, ok := s.SoftwareByPath(p, caseInsensitive)
		if !ok {
			missing++
			t.AddRow(p, "-", "-")
			continue
		}
		t.AddRow(p, sw.UUID, sw.DisplayName())
	}
	t.Render()
	if missing == len(args)-1 {
		return fmt.Errorf("no path resolved to a software entry")
	}
	return nil
}
