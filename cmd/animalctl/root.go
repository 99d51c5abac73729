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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tomoncle/querysculptor"
	"github.com/tomoncle/querysculptor/database"
	"github.com/tomoncle/querysculptor/repository"
	"github.com/tomoncle/querysculptor/types"
)

type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	cmd := &cobra.Command{
		Use:           "animalctl",
		Short:         "Manage animals stored in a SQL database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "YAML database config file")
	flags.String("db-type", "", "database type: sqlite, postgres or mysql")
	flags.String("db-name", "", "database name, or file name for sqlite")
	flags.String("tenant", "", "tenant the statements are routed to")
	flags.Bool("query-log", false, "print executed statements")
	_ = a.v.BindPFlags(flags)
	a.v.SetEnvPrefix("ANIMALCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	cmd.AddCommand(
		a.createCmd(),
		a.listCmd(),
		a.getCmd(),
		a.renameCmd(),
		a.deleteCmd(),
		a.existsCmd(),
		a.countCmd(),
		a.migrationsCmd(),
		a.healthCmd(),
	)
	return cmd
}

func (a *app) config() (*database.Config, error) {
	cfg := database.DefaultConfig()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := database.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dbType := a.v.GetString("db-type"); dbType != "" {
		cfg.ConnectionConfig.Type = dbType
	}
	if dbName := a.v.GetString("db-name"); dbName != "" {
		cfg.ConnectionConfig.DBName = dbName
	}
	if a.v.GetBool("query-log") {
		cfg.ConnectionConfig.EnableQueryLog = true
		cfg.ConnectionConfig.ColorQueryLog = true
	}
	cfg.ConnectionConfig.HealthCheckInterval = 0
	cfg.DataMigrateConfig.EnableMigrateOnStartup = true
	return cfg, nil
}

// run opens the database, migrates it and closes it once fn returns.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, svc querysculptor.Service[Animal]) error) (err error) {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	if _, err := database.InitDB(cfg); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, database.CloseDB())
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if tenant := a.v.GetString("tenant"); tenant != "" {
		ctx = database.WithTenant(ctx, tenant)
	}
	return fn(ctx, querysculptor.NewService[Animal](repository.WithStrictDescriptor[Animal]()))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseSort reads a comma separated column list; a leading "-" sorts that
// column descending.
func parseSort(s string) types.Sort {
	sort := types.EmptySort()
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
		case strings.HasPrefix(name, "-"):
			sort = sort.AndDirection(strings.TrimPrefix(name, "-"), types.Descending)
		default:
			sort = sort.And(name)
		}
	}
	return sort
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid animal id %q", s)
	}
	return id, nil
}
