package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elmatadero/carniceria-client/internal/session"
)

func (a *App) loginCommand() *cobra.Command {
	var email, password, role string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = a.prompt("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt("Contraseña: "); err != nil {
					return err
				}
			}

			id, err := a.Session.Login(cmd.Context(), email, password, role)
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprintf(a.Out, "¡Bienvenido de nuevo, %s!\n", id.Name)
			if id.CanManageOrders() {
				fmt.Fprintln(a.Out, "Tenés acceso al panel de administración: carniceria admin --help")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email de la cuenta")
	cmd.Flags().StringVar(&password, "password", "", "contraseña")
	cmd.Flags().StringVar(&role, "role", "", "rol esperado (cliente, empleado o admin); si no coincide, el login falla")
	return cmd
}

func (a *App) registerCommand() *cobra.Command {
	var form session.RegisterForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Crea una cuenta de cliente",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if form.Name == "" {
				if form.Name, err = a.prompt("Nombre: "); err != nil {
					return err
				}
			}
			if form.Surname == "" {
				if form.Surname, err = a.prompt("Apellido: "); err != nil {
					return err
				}
			}
			if form.Email == "" {
				if form.Email, err = a.prompt("Email: "); err != nil {
					return err
				}
			}
			if form.Password == "" {
				if form.Password, err = a.prompt("Contraseña: "); err != nil {
					return err
				}
				if form.PasswordConfirm, err = a.prompt("Repetí la contraseña: "); err != nil {
					return err
				}
			} else if form.PasswordConfirm == "" {
				form.PasswordConfirm = form.Password
			}

			id, err := a.Session.Register(cmd.Context(), form)
			if err != nil {
				return a.userError(err)
			}
			fmt.Fprintf(a.Out, "¡Registrado con éxito! Tu número de cliente es %d.\n", id.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Name, "name", "", "nombre")
	cmd.Flags().StringVar(&form.Surname, "surname", "", "apellido")
	cmd.Flags().StringVar(&form.Email, "email", "", "email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "teléfono")
	cmd.Flags().StringVar(&form.Address, "address", "", "dirección")
	cmd.Flags().StringVar(&form.Password, "password", "", "contraseña (mínimo 6 caracteres)")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.Session.Current()
			if id == nil {
				fmt.Fprintln(a.Out, "No hay sesión activa.")
				return nil
			}
			if err := a.Session.Logout(); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "Sesión cerrada, %s.\n", id.Name)
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra la sesión actual",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.Session.Current()
			if id == nil {
				fmt.Fprintln(a.Out, "Navegando como anónimo.")
				return nil
			}
			fmt.Fprintf(a.Out, "%s <%s>\n", id.FullName(), id.Email)
			if id.Role != session.RoleCustomer {
				fmt.Fprintf(a.Out, "Rol: %s\n", id.Role)
			}
			if id.Phone != "" {
				fmt.Fprintf(a.Out, "Tel: %s\n", id.Phone)
			}
			if id.Address != "" {
				fmt.Fprintf(a.Out, "Dir: %s\n", id.Address)
			}
			return nil
		},
	}
}
