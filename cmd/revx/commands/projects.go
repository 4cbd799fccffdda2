package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/revxlabs/revx/pkg/revx"
)

var (
	searchFlag   string
	tagFlags     []uint64
	topRatedFlag bool

	titleFlag       string
	descriptionFlag string
	categoryFlag    string
	projectTagFlags []uint64
	imageFlags      []string
)

// projectInputFromFlags builds the submission payload from the create and
// update flags. Stale tag ids are dropped server-catalog-side by the
// client's Submit methods.
func projectInputFromFlags() revx.ProjectInput {
	in := revx.ProjectInput{
		Title:       titleFlag,
		Description: descriptionFlag,
		TagIDs:      projectTagFlags,
		Images:      imageFlags,
	}
	if categoryFlag != "" {
		in.Category = &categoryFlag
	}
	return in
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Browse and manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := client.ListProjects(cmd.Context())
		if err != nil {
			return err
		}

		tagIDs := tagFlags
		if len(tagIDs) > 0 {
			catalog, err := client.ListTags(cmd.Context())
			if err != nil {
				return err
			}
			tagIDs = revx.SanitizeTagIDs(tagIDs, catalog)
		}

		filtered := revx.Filter{Search: searchFlag, TagIDs: tagIDs}.Apply(projects)
		if topRatedFlag {
			filtered = revx.TopRated(filtered)
		}

		for _, p := range filtered {
			fmt.Printf("#%d  %s  [%s]\n", p.ID, p.Title, p.AvgRatingLabel())
		}
		fmt.Printf("%d project(s)\n", len(filtered))
		return nil
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one project in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		p, err := client.GetProject(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("%s (#%d)\n", p.Title, p.ID)
		fmt.Println(p.Description)
		fmt.Printf("Rating: %s\n", p.AvgRatingLabel())
		if len(p.Tags) > 0 {
			fmt.Print("Tags:")
			for _, t := range p.Tags {
				fmt.Printf(" %s", t.Name)
			}
			fmt.Println()
		}
		for _, r := range p.Reviews {
			fmt.Printf("  %s/5 by %s: %s\n", r.Rating, r.Username, r.Review)
		}
		for _, c := range p.Contributors {
			fmt.Printf("  contributor: %s (%s)\n", c.Username, c.Status)
		}
		return nil
	},
}

var projectsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List projects you own",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := client.MyProjects(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Printf("#%d  %s  [%s]\n", p.ID, p.Title, p.AvgRatingLabel())
		}
		return nil
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project you own",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := client.SubmitProject(cmd.Context(), projectInputFromFlags())
		if err != nil {
			return err
		}
		fmt.Printf("Project #%d created\n", p.ID)
		return nil
	},
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a project you own",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		p, err := client.SubmitProjectUpdate(cmd.Context(), id, projectInputFromFlags())
		if err != nil {
			return err
		}
		fmt.Printf("Project #%d updated\n", p.ID)
		return nil
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := client.ListTags(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Printf("%d\t%s\n", t.ID, t.Name)
		}
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review <project-id> <rating> <text>",
	Short: "Review a project (rating 1-5)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid project id %q", args[0])
		}
		review, err := client.AddReview(cmd.Context(), id, revx.ReviewInput{
			Rating: args[1],
			Review: args[2],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Review #%d posted\n", review.ID)
		return nil
	},
}

func init() {
	projectsListCmd.Flags().StringVar(&searchFlag, "search", "", "substring to match against title, description, and tags")
	uint64SliceVar(projectsListCmd.Flags(), &tagFlags, "tag", nil, "tag id to filter by (repeatable, any match passes)")
	projectsListCmd.Flags().BoolVar(&topRatedFlag, "top-rated", false, "show only the highest rated projects")

	for _, cmd := range []*cobra.Command{projectsCreateCmd, projectsUpdateCmd} {
		cmd.Flags().StringVar(&titleFlag, "title", "", "project title")
		cmd.Flags().StringVar(&descriptionFlag, "description", "", "project description")
		cmd.Flags().StringVar(&categoryFlag, "category", "", "project category")
		uint64SliceVar(cmd.Flags(), &projectTagFlags, "tag", nil, "tag id to attach (repeatable)")
		cmd.Flags().StringSliceVar(&imageFlags, "image", nil, "hosted image URL to attach (repeatable)")
	}
	_ = projectsCreateCmd.MarkFlagRequired("title")
	_ = projectsCreateCmd.MarkFlagRequired("description")

	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd, projectsMineCmd, projectsCreateCmd, projectsUpdateCmd)
	rootCmd.AddCommand(projectsCmd, tagsCmd, reviewCmd)
}
