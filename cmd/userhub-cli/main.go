// Package main provides the entry point for userhub-cli, the operator
// command-line client for userhub-server.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/userhub-go/internal/cli/connection"
	"github.com/yndnr/userhub-go/internal/infra/buildinfo"
)

func main() {
	app := &cli.App{
		Name:    "userhub-cli",
		Usage:   "operator client for userhub-server",
		Version: buildinfo.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   "127.0.0.1:8080",
				Usage:   "server address",
				EnvVars: []string{"USERHUB_CLI_SERVER"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "API token for bearer-protected commands",
				EnvVars: []string{"USERHUB_CLI_TOKEN"},
			},
		},
		Commands: []*cli.Command{
			usersCommand(),
			loginCommand(),
			statsCommand(),
			healthCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func client(c *cli.Context) *connection.HTTPClient {
	return connection.NewHTTPClient(c.String("server"), c.String("token"))
}

// printJSON renders a response body indented to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "manage the user directory",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all users",
				Action: func(c *cli.Context) error {
					resp, err := client(c).Get(c.Context, "/users")
					if err != nil {
						return err
					}
					var body map[string]any
					if err := connection.ParseResponse(resp, &body); err != nil {
						return err
					}
					return printJSON(body)
				},
			},
			{
				Name:      "get",
				Usage:     "show one user",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					resp, err := client(c).Get(c.Context, fmt.Sprintf("/users/%d", id))
					if err != nil {
						return err
					}
					var body map[string]any
					if err := connection.ParseResponse(resp, &body); err != nil {
						return err
					}
					return printJSON(body)
				},
			},
			{
				Name:  "create",
				Usage: "create a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
				},
				Action: func(c *cli.Context) error {
					resp, err := client(c).Post(c.Context, "/users", map[string]string{
						"name":  c.String("name"),
						"email": c.String("email"),
					})
					if err != nil {
						return err
					}
					var body map[string]any
					if err := connection.ParseResponse(resp, &body); err != nil {
						return err
					}
					return printJSON(body)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a user",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := argID(c)
					if err != nil {
						return err
					}
					resp, err := client(c).Delete(c.Context, fmt.Sprintf("/users/%d", id))
					if err != nil {
						return err
					}
					if err := connection.ParseResponse(resp, nil); err != nil {
						return err
					}
					fmt.Printf("user %d deleted\n", id)
					return nil
				},
			},
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "verify credentials against the server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			resp, err := client(c).Post(c.Context, "/login", map[string]string{
				"username": c.String("username"),
				"password": c.String("password"),
			})
			if err != nil {
				return err
			}
			var body map[string]any
			if err := connection.ParseResponse(resp, &body); err != nil {
				return err
			}
			return printJSON(body)
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "show server statistics (requires --token)",
		Action: func(c *cli.Context) error {
			resp, err := client(c).Get(c.Context, "/api/stats")
			if err != nil {
				return err
			}
			var body map[string]any
			if err := connection.ParseResponse(resp, &body); err != nil {
				return err
			}
			return printJSON(body)
		},
	}
}

func healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "check server health",
		Action: func(c *cli.Context) error {
			resp, err := client(c).Get(c.Context, "/health")
			if err != nil {
				return err
			}
			var body map[string]any
			if err := connection.ParseResponse(resp, &body); err != nil {
				return err
			}
			return printJSON(body)
		},
	}
}

func argID(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one <id> argument")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Args().First())
	}
	return id, nil
}
