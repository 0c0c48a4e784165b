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

	"github.com/spf13/cobra"
)

// Validate checks a registration file.
type Validate struct {
	cmd      *cobra.Command
	mainopts *Options
}

// NewValidate creates the validate command.
func NewValidate(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "check a registration file",
		Args:  cobra.NoArgs,
	}
	c := &Validate{cmd: cmd, mainopts: opts}
	cmd.RunE = func(*cobra.Command, []string) error { return c.Run() }
	return cmd
}

// Run builds the registry and reports conflicts and skipped declarations.
func (c *Validate) Run() error {
	s, f, err := c.mainopts.service()
	if err != nil {
		return err
	}
	out := c.cmd.OutOrStdout()

	for _, cf := range s.Registry().Conflicts() {
		fmt.Fprintf(out, "conflict: shape %q: %v replaced %v\n", cf.Shape, cf.Kept, cf.Replaced)
	}
	registered := len(s.Registry().Registrations())
	declared := len(f.Schemes)
	if skipped := declared - registered; skipped > 0 {
		return fmt.Errorf("%d of %d declarations were rejected (see log)", skipped, declared)
	}
	fmt.Fprintf(out, "OK: %d schemes registered\n", registered)
	return nil
}
