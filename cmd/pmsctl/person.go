package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	personAll  bool
	personSets []string
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Search, create and edit people",
}

var personSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search people by first name or surname",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = args[0]
		}
		items, err := current.people.Search(cmd.Context(), term, personAll)
		if err != nil {
			return err
		}
		printPeople(cmd.OutOrStdout(), items)
		return nil
	},
}

var personFindOrCreateCmd = &cobra.Command{
	Use:   "find-or-create <name>",
	Short: "Pick a matching person or create a new one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolvePerson(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "person %d\n", id)
		return nil
	},
}

var personProjectsCmd = &cobra.Command{
	Use:   "projects <id>",
	Short: "List projects where the person holds any role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		items, err := current.projects.ListByPerson(cmd.Context(), id)
		if err != nil {
			return err
		}
		printProjects(cmd.OutOrStdout(), items)
		return nil
	},
}

var personEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit first_name, surname, email or address in one update",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		changes := make(map[string]string, len(personSets))
		for _, kv := range personSets {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("--set %q: want field=value", kv)
			}
			changes[k] = v
		}
		if len(changes) == 0 {
			return fmt.Errorf("nothing to change, use --set field=value")
		}
		p, err := current.people.Update(cmd.Context(), id, changes)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("updated "+p.OneLine()))
		return nil
	},
}

func init() {
	personSearchCmd.Flags().BoolVar(&personAll, "all", false, "list everyone when the term is empty")
	personEditCmd.Flags().StringArrayVar(&personSets, "set", nil, "field=value to change (repeatable)")
	personCmd.AddCommand(personSearchCmd, personFindOrCreateCmd, personProjectsCmd, personEditCmd)
}
