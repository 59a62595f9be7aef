// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/taibuivan/folio/internal/content/registry"
	"github.com/taibuivan/folio/internal/content/schema"
	"github.com/taibuivan/folio/pkg/client"
	"github.com/taibuivan/folio/pkg/site"
)

// errLintFailed is returned after the problems were printed.
var errLintFailed = errors.New("registry has invalid definitions")

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "folioctl",
		Short:         "Operate a Folio content registry and API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(schemasCommand(), contentCommand(), siteCommand())
	return root
}

func printJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func newClient() (*client.Client, error) {
	cfg, err := client.LoadConfig()
	if err != nil {
		return nil, err
	}
	return client.New(cfg), nil
}

// # Schemas

func schemasCommand() *cobra.Command {
	schemas := &cobra.Command{Use: "schemas", Short: "Inspect compiled content types"}

	schemas.AddCommand(&cobra.Command{
		Use:   "lint",
		Short: "Validate every content type definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			problems := registry.Default().Validate()
			if len(problems) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			}

			slugs := make([]string, 0, len(problems))
			for slug := range problems {
				slugs = append(slugs, slug)
			}
			sort.Strings(slugs)

			for _, slug := range slugs {
				for _, problem := range problems[slug] {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", slug, problem.Error())
				}
			}
			return errLintFailed
		},
	})

	schemas.AddCommand(&cobra.Command{
		Use:   "export [type]",
		Short: "Print the JSON Schema of one or all content types",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Default()

			definitions := reg.List()
			if len(args) == 1 {
				def, err := reg.Lookup(args[0])
				if err != nil {
					return err
				}
				definitions = []schema.ContentTypeDefinition{def}
			}

			exported := make(map[string]any, len(definitions))
			for _, def := range definitions {
				document, err := schema.JSONSchema(def)
				if err != nil {
					return fmt.Errorf("%s: %w", def.Slug, err)
				}
				exported[def.Slug] = document
			}

			if len(args) == 1 {
				return printJSON(cmd, exported[args[0]])
			}
			return printJSON(cmd, exported)
		},
	})

	return schemas
}

// # Content

func contentCommand() *cobra.Command {
	content := &cobra.Command{Use: "content", Short: "Read and delete entries through the API"}

	var options client.ListOptions
	list := &cobra.Command{
		Use:   "list <type>",
		Short: "List entries of a content type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newClient()
			if err != nil {
				return err
			}
			result, err := api.ListContent(cmd.Context(), args[0], options)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	list.Flags().StringVar(&options.Status, "status", "", "draft, published or archived")
	list.Flags().BoolVar(&options.All, "all", false, "return every entry up to the server cap")
	list.Flags().IntVar(&options.Page, "page", 0, "page number")
	list.Flags().IntVar(&options.Limit, "limit", 0, "page size")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newClient()
			if err != nil {
				return err
			}
			entry, err := api.GetEntry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, entry)
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one entry. Deleting a missing entry is not an error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newClient()
			if err != nil {
				return err
			}
			if err := api.Delete(cmd.Context(), args[0]); err != nil && !client.IsNotFound(err) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
			return nil
		},
	}

	content.AddCommand(list, get, remove)
	return content
}

// # Site

func siteCommand() *cobra.Command {
	siteCmd := &cobra.Command{Use: "site", Short: "Read content the way the public site does"}

	siteCmd.AddCommand(&cobra.Command{
		Use:   "single <type>",
		Short: "Print a single type, or its fallback when the API is unreachable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newClient()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			fetcher := site.NewFetcher(api, site.WithLogger(logger))

			switch args[0] {
			case "contact_info":
				return printJSON(cmd, site.GetSingleContent(cmd.Context(), fetcher, args[0], site.DefaultContactInfo))
			case "site_settings":
				return printJSON(cmd, site.GetSingleContent(cmd.Context(), fetcher, args[0], site.DefaultSiteSettings))
			default:
				return printJSON(cmd, site.GetSingleContent(cmd.Context(), fetcher, args[0], map[string]any{}))
			}
		},
	})

	return siteCmd
}
