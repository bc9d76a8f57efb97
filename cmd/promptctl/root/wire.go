package root

import (
	promptcmd "github.com/dmitrymomot/promptdesk/cmd/promptctl/cmd/prompt"
	slugcmd "github.com/dmitrymomot/promptdesk/cmd/promptctl/cmd/slug"
)

func init() {
	Root().AddCommand(slugcmd.Command())
	Root().AddCommand(promptcmd.Command())
}
