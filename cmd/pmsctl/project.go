package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

var (
	searchField string
	searchAll   bool

	createName     string
	createType     string
	createCustomer string

	editSets   []string
	editDryRun bool

	deleteYes bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Search, edit and advance projects",
}

var projectSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search projects by name or address",
	Long: `Exact matches are listed first, then projects containing the term.
A project matching both ways is listed twice. Wildcards in the term are
matched literally.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) == 1 {
			term = args[0]
		}
		items, err := current.projects.Search(cmd.Context(), service.Query{
			Field:      domain.SearchField(searchField),
			Term:       term,
			AllOnEmpty: searchAll,
		})
		if err != nil {
			return err
		}
		printProjects(cmd.OutOrStdout(), items)
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Show a project with its people",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		p, err := current.projects.Get(cmd.Context(), number)
		if err != nil {
			return err
		}
		roles, err := current.projects.Roles(cmd.Context(), p)
		if err != nil {
			return err
		}
		printProject(cmd.OutOrStdout(), p, roles, current.projects.Gate().Check(p))
		return nil
	},
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project in the Captured stage",
	Long: `Create a project. The customer is a person id or a name resolved
interactively; a blank name defaults to "<type> <customer surname>".

Examples:
  pmsctl project create --type house --customer Smith
  pmsctl project create --name "Harbour Hotel" --type 6 --customer 3`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		t, err := domain.ParseProjectType(createType)
		if err != nil {
			return err
		}
		customerID, err := resolvePerson(cmd, createCustomer)
		if err != nil {
			return err
		}
		p, err := current.projects.Create(cmd.Context(), service.NewProjectInput{
			Name:       createName,
			Type:       t,
			CustomerID: customerID,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("created project %d: %s", p.Number, p.Name)))
		return nil
	},
}

var projectAdvanceCmd = &cobra.Command{
	Use:   "advance <number>",
	Short: "Move a project to its next stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		_, res, err := current.projects.Advance(cmd.Context(), number)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case res.Advanced:
			fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("%s -> %s", res.From, res.To)))
		case res.Terminal:
			fmt.Fprintln(out, "project is already finalised")
		default:
			fmt.Fprintln(out, warnStyle.Render("not advanced: "+res.Reason))
		}
		return nil
	},
}

var projectEditCmd = &cobra.Command{
	Use:   "edit <number>",
	Short: "Stage field edits and commit them together",
	Long: `Each --set stages one field. Role fields (customer, architect,
engineer, project_manager) accept a person id or a name that is resolved
interactively. All staged edits are written in one update.

Fields: name, address, erf, total_fee, total_paid, deadline (YYYY-MM-DD),
customer, architect, project_manager, engineer, type.

Examples:
  pmsctl project edit 7 --set erf=4521 --set address="12 Main Rd"
  pmsctl project edit 7 --set architect=Naidoo --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		if len(editSets) == 0 {
			return errors.New("nothing to change, use --set field=value")
		}
		editor, err := current.projects.Editor(cmd.Context(), number)
		if err != nil {
			return err
		}
		for _, kv := range editSets {
			name, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("--set %q: want field=value", kv)
			}
			field, err := domain.ParseProjectField(name)
			if err != nil {
				return err
			}
			if field.IsRole() {
				id, err := resolvePerson(cmd, value)
				if err != nil {
					return err
				}
				err = editor.Propose(field, id)
				if err != nil {
					return err
				}
				continue
			}
			if err := editor.ProposeText(field, value); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if !editor.HasPendingChanges() {
			fmt.Fprintln(out, "no changes")
			return nil
		}
		pending := editor.PendingText()
		keys := make([]string, 0, len(pending))
		for k := range pending {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s = %s\n", k, pending[k])
		}
		for _, w := range editor.Warnings() {
			fmt.Fprintln(out, warnStyle.Render("warning: "+w))
		}
		if editDryRun {
			return nil
		}
		p, err := editor.Commit(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("project %d updated", p.Number)))
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Permanently delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := parseNumber(args[0])
		if err != nil {
			return err
		}
		if !deleteYes {
			return errors.New("refusing to delete without --yes")
		}
		if err := current.projects.Delete(cmd.Context(), number); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("project %d deleted", number)))
		return nil
	},
}

var projectCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "List unfinished projects that are not past their deadline",
	RunE: func(cmd *cobra.Command, _ []string) error {
		items, err := current.projects.ListCurrent(cmd.Context())
		if err != nil {
			return err
		}
		printProjects(cmd.OutOrStdout(), items)
		return nil
	},
}

var projectOverdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "List unfinished projects past their deadline",
	RunE: func(cmd *cobra.Command, _ []string) error {
		items, err := current.projects.ListOverdue(cmd.Context())
		if err != nil {
			return err
		}
		printProjects(cmd.OutOrStdout(), items)
		return nil
	},
}

func init() {
	projectSearchCmd.Flags().StringVar(&searchField, "field", "name", "field to search: name or address")
	projectSearchCmd.Flags().BoolVar(&searchAll, "all", false, "list every project when the term is empty")

	projectCreateCmd.Flags().StringVar(&createName, "name", "", "project name (defaults to type and customer surname)")
	projectCreateCmd.Flags().StringVar(&createType, "type", "", "project type id or label")
	projectCreateCmd.Flags().StringVar(&createCustomer, "customer", "", "customer id or name")
	_ = projectCreateCmd.MarkFlagRequired("type")
	_ = projectCreateCmd.MarkFlagRequired("customer")

	projectEditCmd.Flags().StringArrayVar(&editSets, "set", nil, "field=value to stage (repeatable)")
	projectEditCmd.Flags().BoolVar(&editDryRun, "dry-run", false, "show staged changes without committing")

	projectDeleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "confirm deletion")

	projectCmd.AddCommand(
		projectSearchCmd,
		projectShowCmd,
		projectCreateCmd,
		projectAdvanceCmd,
		projectEditCmd,
		projectDeleteCmd,
		projectCurrentCmd,
		projectOverdueCmd,
	)
}

func parseNumber(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}

// resolvePerson accepts a person id or runs find-or-create on a name.
func resolvePerson(cmd *cobra.Command, value string) (int64, error) {
	if id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
		p, err := current.people.Get(cmd.Context(), id)
		if err != nil {
			return 0, err
		}
		return p.ID, nil
	}
	pr := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	res, err := current.people.FindOrCreate(cmd.Context(), strings.TrimSpace(value), pr, pr)
	if err != nil {
		return 0, err
	}
	if res.Created {
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("created person %d: %s", res.Person.ID, res.Person.FullName())))
	}
	return res.Person.ID, nil
}
