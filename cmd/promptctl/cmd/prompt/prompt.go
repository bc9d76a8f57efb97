package promptcmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/promptdesk/internal/client"
	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/internal/tui"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// Command groups record helpers. The resource defaults to prompts.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Prompt utilities (new)",
	}

	cmd.AddCommand(newCommand())
	return cmd
}

func newCommand() *cobra.Command {
	var (
		resource     string
		registryPath string
		name         string
		debounce     time.Duration
	)

	c := &cobra.Command{
		Use:   "new",
		Short: "Create a record in an interactive form with live identifier checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := content.DefaultRegistry()
			if registryPath != "" {
				var err error
				if reg, err = content.LoadRegistry(registryPath); err != nil {
					return err
				}
			}
			res, err := reg.Lookup(resource)
			if err != nil {
				return err
			}

			api, err := client.New(cmd.Flag("server").Value.String())
			if err != nil {
				return err
			}

			var formOpts []tui.FormOption
			if name != "" {
				formOpts = append(formOpts, tui.WithInitialName(name))
			}

			rec, err := tui.Run(cmd.Context(), tui.Config{
				Backend:  api,
				Creator:  api,
				Resource: res,
				FieldOptions: []slugfield.Option{
					slugfield.WithDebounce(debounce),
					slugfield.WithLookupTimeout(5 * time.Second),
				},
				FormOptions: formOpts,
				Input:       cmd.InOrStdin(),
				Output:      cmd.OutOrStdout(),
			})
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s\n", res.Name, rec.ID)
			return nil
		},
	}

	c.Flags().StringVar(&resource, "resource", "prompts", "Resource to create the record in")
	c.Flags().StringVar(&registryPath, "registry", "", "Resource registry file (defaults to the built-in one)")
	c.Flags().StringVar(&name, "name", "", "Pre-fill the name")
	c.Flags().DurationVar(&debounce, "debounce", slugfield.DefaultDebounce, "Quiet period before an identifier is checked")
	return c
}
