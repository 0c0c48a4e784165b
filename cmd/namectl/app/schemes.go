/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package app

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"dirpx.dev/mrx/apis"
	uref "dirpx.dev/mrx/utils/reflect"
)

// Schemes lists the registered schemes.
type Schemes struct {
	cmd      *cobra.Command
	mainopts *Options
	model    string
}

// NewSchemes creates the schemes command.
func NewSchemes(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "list the registered schemes, highest priority first",
		Args:  cobra.NoArgs,
	}
	c := &Schemes{cmd: cmd, mainopts: opts}
	cmd.RunE = func(*cobra.Command, []string) error { return c.Run() }
	cmd.Flags().StringVarP(&c.model, "model", "m", "", "only schemes whose model type matches this name")
	return cmd
}

// Run renders the scheme table.
func (c *Schemes) Run() error {
	s, _, err := c.mainopts.service()
	if err != nil {
		return err
	}
	regs := s.Registry().Registrations()
	slices.SortStableFunc(regs, func(a, b apis.Registration) int {
		return b.Priority.Compare(a.Priority)
	})

	t := table.NewWriter()
	t.SetOutputMirror(c.cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "SHAPE", "SCHEME", "MODEL", "CONTEXT", "PRIORITY"})

	count := 0
	for _, r := range regs {
		model := uref.TypeName(r.Scheme.ModelType())
		if c.model != "" && model != c.model {
			continue
		}
		count++
		t.AppendRow(table.Row{count, r.Scheme.Shape(), fmt.Sprint(r.Scheme), model, contextName(r.Scheme.ContextType()), r.Priority.String()})
	}
	t.AppendFooter(table.Row{"", "", "", "", "total", count})
	t.Render()
	return nil
}

func contextName(t reflect.Type) string {
	if t == apis.AnyContext {
		return "*"
	}
	return uref.TypeName(t)
}
