// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/ontvitals/internal/familytree"
)

// MatchCmd runs the family tree matcher from the command line, the way a
// registration page does for one of its people.
func MatchCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "List family tree candidates for a transcribed person",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			surname, _ := flags.GetString("surname")
			given, _ := flags.GetString("given")
			roleName, _ := flags.GetString("role")
			year, _ := flags.GetInt("year")
			age, _ := flags.GetString("age")
			father, _ := flags.GetString("father")
			birth, _ := flags.GetString("birth")
			delta, _ := flags.GetInt("delta")

			role, ok := familytree.ParseRole(roleName)
			if !ok {
				return fmt.Errorf("unknown role %q: want male, female, officiant, unknown, G, B or M", roleName)
			}

			matcher, release, err := deps.Matcher(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			candidates, err := matcher.Find(cmd.Context(), familytree.Query{
				Surname:       surname,
				GivenNames:    given,
				Father:        father,
				Role:          role,
				BirthDate:     birth,
				Age:           age,
				ReferenceYear: year,
				Delta:         delta,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(candidates) == 0 {
				fmt.Fprintln(out, warnColor.Sprint("no candidates"))
				return nil
			}

			writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "IDIR\tNAME\tPARENTS\tSPOUSES")
			for _, candidate := range candidates {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
					keyColor.Sprint(strconv.FormatInt(candidate.IDIR, 10)),
					candidate.Name(),
					candidate.Parents(),
					strings.Join(candidate.Spouses, ", "),
				)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().String("surname", "", "Surname as transcribed")
	cmd.Flags().String("given", "", "Given names as transcribed")
	cmd.Flags().String("role", "unknown", "male, female, officiant, unknown, or a participant code G, B or M")
	cmd.Flags().Int("year", 0, "Year the age was stated in")
	cmd.Flags().String("age", "", `Age as transcribed, e.g. "45" or "3m"`)
	cmd.Flags().String("father", "", "Father's name; its surname widens the search")
	cmd.Flags().String("birth", "", "Birth date as transcribed")
	cmd.Flags().Int("delta", 0, "Birth year tolerance; the role's default when 0")
	_ = cmd.MarkFlagRequired("surname")
	_ = cmd.MarkFlagRequired("given")
	return cmd
}
