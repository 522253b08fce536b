// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the local database and configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize the config file and session database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// authCommand handles sign-in, sign-out and account state.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the signed-in session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "google",
				Usage:  "Sign in with a Google account via the browser",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthGoogle,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and clear stored tokens",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state",
				Action: r.AuthStatus,
			},
		},
	}
}

// locationsCommand handles location catalog operations.
func locationsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "locations",
		Aliases: []string{"loc"},
		Usage:   "Browse and interact with locations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all locations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LocationsList,
			},
			{
				Name:  "show",
				Usage: "Show a single location",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LocationsShow,
			},
			{
				Name:  "nearby",
				Usage: "List locations near a coordinate",
				Flags: []cli.Flag{
					configFlag(),
					&cli.FloatFlag{
						Name:  "lat",
						Usage: "Latitude (defaults to the configured position)",
					},
					&cli.FloatFlag{
						Name:  "lng",
						Usage: "Longitude (defaults to the configured position)",
					},
					&cli.IntFlag{
						Name:  "radius",
						Usage: "Search radius in meters",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LocationsNearby,
			},
			{
				Name:  "like",
				Usage: "Like a location",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LocationsLike,
			},
			{
				Name:  "comment",
				Usage: "Comment on a location",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "text"},
				},
				Action: r.LocationsComment,
			},
			{
				Name:  "export",
				Usage: "Export the location catalog to files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown or txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "exports",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent export workers",
					},
					&cli.IntFlag{
						Name:  "rate",
						Usage: "Maximum requests per second",
					},
				},
				Action: r.LocationsExport,
			},
		},
	}
}

// feedCommand launches the interactive feed and map view.
func feedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "feed",
		Usage:  "Open the interactive feed and map",
		Action: r.Feed,
	}
}
