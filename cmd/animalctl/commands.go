/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tomoncle/querysculptor"
	"github.com/tomoncle/querysculptor/database"
	"github.com/tomoncle/querysculptor/types"
	"github.com/uptrace/bun"
)

func (a *app) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME...",
		Short: "Create animals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, svc querysculptor.Service[Animal]) error {
				animals := make([]*Animal, len(args))
				for i, name := range args {
					animals[i] = &Animal{Name: name}
				}
				if err := svc.Save(ctx, animals...); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), animals)
			})
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	var (
		name string
		page int
		size int
		sort string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List animals page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, svc querysculptor.Service[Animal]) error {
				req := types.NewPageRequest(types.NewPaging(page, size), parseSort(sort))
				result, err := svc.Page(ctx, filter(0, name), req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "only animals whose name contains this text")
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", 20, "page size, -1 lists every animal")
	cmd.Flags().StringVar(&sort, "sort", "id", "comma separated columns, prefix with - for descending")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, svc querysculptor.Service[Animal]) error {
				animal, err := svc.Get(ctx, hasID(id))
				if errors.Is(err, sql.ErrNoRows) {
					return fmt.Errorf("animal %d not found", id)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), animal)
			})
		},
	}
}

func (a *app) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename an animal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, svc querysculptor.Service[Animal]) error {
				n, err := svc.Update(ctx, hasID(id), func(q *bun.UpdateQuery) {
					q.Set("name = ?", args[1])
				})
				if err != nil {
					return err
				}
				if n == 0 {
					return fmt.Errorf("animal %d not found", id)
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "renamed %d\n", n)
				return err
			})
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	var (
		name string
		all  bool
	)
	cmd := &cobra.Command{
		Use:   "delete [ID]",
		Short: "Delete animals by id or by exact name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := hasName(name)
			switch {
			case len(args) == 1:
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				spec = hasID(id)
			case all:
				spec = filter(0, "")
			case name == "":
				return fmt.Errorf("an id, --name or --all is required")
			}
			return a.run(cmd, func(ctx context.Context, svc querysculptor.Service[Animal]) error {
				n, err := svc.Delete(ctx, spec)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", n)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "delete animals with exactly this name")
	cmd.Flags().BoolVar(&all, "all", false, "delete every animal")
	return cmd
}

func (a *app) existsCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "exists",
		Short: "Report whether an animal with the given name exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, svc querysculptor.Service[Animal]) error {
				ok, err := svc.Exists(ctx, hasName(name))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), ok)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "exact animal name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) countCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count animals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, svc querysculptor.Service[Animal]) error {
				n, err := svc.Count(ctx, filter(0, name))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "only animals whose name contains this text")
	return cmd
}

func (a *app) migrationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrations",
		Short: "List applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, _ querysculptor.Service[Animal]) error {
				applied, err := database.NewMigrationManager(database.GetDB(), nil).GetAppliedMigrations(ctx)
				if err != nil {
					return err
				}
				for _, m := range applied {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Version, m.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the database connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(ctx context.Context, _ querysculptor.Service[Animal]) error {
				status := database.GetHealthStatus(ctx)
				if err := printJSON(cmd.OutOrStdout(), status); err != nil {
					return err
				}
				if !status.Healthy {
					return fmt.Errorf("database unhealthy: %s", status.LastError)
				}
				return nil
			})
		},
	}
}
