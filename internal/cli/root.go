package cli

import (
	"github.com/spf13/cobra"
)

// RootCommand builds the full command tree. Handlers only delegate to the
// SDK packages; no command keeps state of its own.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "carniceria",
		Short:         "Tienda y back-office de la carnicería El Matadero",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		a.catalogCommand(),
		a.cartCommand(),
		a.checkoutCommand(),
		a.historyCommand(),
		a.loginCommand(),
		a.registerCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.adminCommand(),
	)
	return root
}
