package slugcmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/promptdesk/internal/client"
	"github.com/dmitrymomot/promptdesk/pkg/slug"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// Command groups slug helpers.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slug",
		Short: "Slug utilities (make/check)",
	}

	cmd.AddCommand(makeCommand(), checkCommand())
	return cmd
}

func makeCommand() *cobra.Command {
	var maxLength int

	c := &cobra.Command{
		Use:   "make <text...>",
		Short: "Print the slug of the given text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []slug.Option
			if maxLength > 0 {
				opts = append(opts, slug.MaxLength(maxLength))
			}
			fmt.Fprintln(cmd.OutOrStdout(), slug.Make(strings.Join(args, " "), opts...))
			return nil
		},
	}

	c.Flags().IntVar(&maxLength, "max-length", 0, "Truncate the slug at a word boundary (0 = no limit)")
	return c
}

func checkCommand() *cobra.Command {
	var (
		resource string
		field    string
		asJSON   bool
	)

	c := &cobra.Command{
		Use:   "check <text...>",
		Short: "Find the first free slug for the given text",
		Long: "Slugifies the text and asks the server for the first free identifier: the slug itself " +
			"when free, otherwise the smallest free base-N that fits the resource.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := client.New(cmd.Flag("server").Value.String())
			if err != nil {
				return err
			}

			base := slug.Make(strings.Join(args, " "))
			if base == "" {
				return fmt.Errorf("%q yields an empty slug", strings.Join(args, " "))
			}

			// The server applies the resource's length cap and reserved identifiers.
			res, err := api.Check(cmd.Context(), resource, field, base)
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			if res.Status == slugfield.StatusAvailable {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tavailable\n", base)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\ttaken, next free: %s\n", base, res.Candidate)
			return nil
		},
	}

	c.Flags().StringVar(&resource, "resource", "prompts", "Resource to check against")
	c.Flags().StringVar(&field, "field", "id", "Unique field to check")
	c.Flags().BoolVar(&asJSON, "json", false, "Print the server's check result as JSON")
	return c
}
