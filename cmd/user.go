package cmd

import (
	"context"
	"fmt"
	"go/types"
	"os"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/config"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/portfolio-backend/cmd/utils"
	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/secrets"
	"github.com/stellar/portfolio-backend/internal/services"
)

type userCmd struct{}

func (c *userCmd) Command() *cobra.Command {
	var databaseURL string
	var bcryptCost int
	var syncApproval string
	cfgOpts := config.ConfigOptions{
		utils.DatabaseURLOption(&databaseURL),
		utils.BcryptCostOption(&bcryptCost),
		{
			Name:        "sync-approval",
			Usage:       `Whether the user data may be synced with the premium server. Options: "unknown", "yes", "no".`,
			OptType:     types.String,
			ConfigKey:   &syncApproval,
			FlagDefault: string(entities.SyncApprovalUnknown),
			Required:    false,
		},
	}

	userCmd := &cobra.Command{
		Use:               "user",
		Short:             "User management",
		PersistentPreRunE: utils.DefaultPersistentPreRunE(cfgOpts),
	}

	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Creates a user, prompting for its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			approval, err := parseSyncApproval(syncApproval)
			if err != nil {
				return err
			}

			userService, closeDB, err := openUserService(ctx, databaseURL, bcryptCost)
			if err != nil {
				return err
			}
			defer closeDB()

			prompter, err := utils.NewUserPasswordPrompter("Password:", "Confirm password:", os.Stdin, os.Stdout)
			if err != nil {
				return fmt.Errorf("creating password prompter: %w", err)
			}

			user, err := createUser(ctx, userService, prompter, args[0], approval)
			if err != nil {
				return err
			}
			log.Ctx(ctx).Infof("Created user %s", user.Name)
			return nil
		},
	}
	userCmd.AddCommand(createCmd)

	if err := cfgOpts.Init(userCmd); err != nil {
		log.Fatalf("Error initializing a config option: %s", err.Error())
	}

	return userCmd
}

func createUser(ctx context.Context, userService services.UserService, prompter utils.PasswordPrompter, name string, syncApproval entities.SyncApproval) (entities.User, error) {
	password, err := prompter.Run()
	if err != nil {
		return entities.User{}, err
	}

	user, err := userService.CreateUser(ctx, services.NewUser{
		Name:         name,
		Password:     password,
		SyncApproval: syncApproval,
	})
	if err != nil {
		return entities.User{}, fmt.Errorf("creating user %s: %w", name, err)
	}
	return user, nil
}

func parseSyncApproval(value string) (entities.SyncApproval, error) {
	switch approval := entities.SyncApproval(value); approval {
	case entities.SyncApprovalUnknown, entities.SyncApprovalYes, entities.SyncApprovalNo:
		return approval, nil
	default:
		return "", fmt.Errorf("invalid sync approval %q", value)
	}
}

func openUserService(ctx context.Context, databaseURL string, bcryptCost int) (services.UserService, func(), error) {
	connectionPool, err := db.OpenDBConnectionPool(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("opening connection pool: %w", err)
	}
	closeDB := func() {
		if closeErr := connectionPool.Close(); closeErr != nil {
			log.Ctx(ctx).Errorf("closing connection pool: %v", closeErr)
		}
	}

	sqlxDB, err := connectionPool.SqlxDB(ctx)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("getting sqlx db: %w", err)
	}
	metricsService := metrics.NewMetricsService(sqlxDB)
	models, err := data.NewModels(connectionPool, metricsService)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("creating models: %w", err)
	}

	userService, err := services.NewUserService(models, &secrets.BcryptPasswordHasher{Cost: bcryptCost}, &secrets.DefaultEncrypter{}, metricsService)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("creating user service: %w", err)
	}
	return userService, closeDB, nil
}
