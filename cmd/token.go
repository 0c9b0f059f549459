package main

import (
	"fmt"
	"nutrilog-backend/domain"
	"nutrilog-backend/internal/utils"
	"nutrilog-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	tokenUserID string
	tokenRole   string
	tokenEmail  string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "User id (a random one when empty)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", domain.RoleClient, "Role claim: client or dietitian")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
}

// tokenCmd signs a bearer token with JWT_SECRET for local development.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LoadConfig()

		if tokenRole != domain.RoleClient && tokenRole != domain.RoleDietitian {
			return fmt.Errorf("unknown role %q", tokenRole)
		}
		if tokenUserID == "" {
			tokenUserID = uuid.NewString()
		} else if _, err := uuid.Parse(tokenUserID); err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}

		svc := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), utils.GetConfig("JWT_ISSUER"))
		token, err := svc.GenerateTokenUser(tokenUserID, tokenRole, tokenEmail)
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}
