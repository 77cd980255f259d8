// Copyright 2025 walteh LLC
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

package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/loggerfix/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates the rules command
func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RenderRules(cmd.OutOrStdout(), rule.DefaultTable())
		},
	}

	return cmd
}

// 📋 RenderRules writes one row per rule
func RenderRules(w io.Writer, table rule.Table) error {
	data := pterm.TableData{{"#", "Rule", "Description"}}
	for i, r := range table.Rules() {
		data = append(data, []string{strconv.Itoa(i + 1), r.Name, r.Description})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering rules: %w", err)
	}

	if _, err := fmt.Fprintln(w, out); err != nil {
		return errors.Errorf("writing rules: %w", err)
	}
	return nil
}
