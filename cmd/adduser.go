package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/Pjt727/roster/data"
	"github.com/Pjt727/roster/server/account"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	usernameFlag string
	passwordFlag string
	emailFlag    string
)

var addUser = &cobra.Command{
	Use:   "adduser",
	Short: "add a user who can log in",
	Long:  `defaults to interactive but can add username and password with flags`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx := context.Background()
		store, err := data.Initialize(ctx, cfg.DbConn)
		if err != nil {
			log.WithError(err).Fatal("Could not connect to the database")
		}
		defer store.Close()

		username := usernameFlag
		password := passwordFlag

		if username == "" {
			for {
				fmt.Print("Enter username: ")
				if _, err := fmt.Scanln(&username); err != nil {
					log.WithError(err).Fatal("Failed to read username")
				}
				username = strings.TrimSpace(username)
				if username == "" {
					fmt.Println("Username cannot be empty. Please try again.")
				} else {
					break
				}
			}
		}

		if password == "" {
			for {
				fmt.Print("Enter password: ")
				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Println()
				if err != nil {
					log.WithError(err).Fatal("Failed to read password")
				}
				password = string(bytePassword)
				if password == "" {
					fmt.Println("Password cannot be empty. Please try again.")
					continue
				}

				fmt.Print("Confirm password: ")
				byteConfirmPassword, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Println()
				if err != nil {
					log.WithError(err).Fatal("Failed to read password confirmation")
				}
				if password != string(byteConfirmPassword) {
					fmt.Println("Passwords do not match. Please try again.")
					password = ""
				} else {
					break
				}
			}
		}

		err = account.NewUsers(store).RegisterUser(ctx, account.Registration{
			UserName:  username,
			Password:  password,
			Password2: password,
			Email:     emailFlag,
		})
		if errors.Is(err, account.ErrUserNameTaken) {
			fmt.Printf("%s already exists\n", username)
			os.Exit(1)
		} else if err != nil {
			log.WithError(err).Fatal("Could not add user")
		}
		fmt.Printf("Added %s to the database\n", username)
	},
}

func init() {
	appCmd.AddCommand(addUser)
	addUser.Flags().StringVarP(&usernameFlag, "username", "u", "", "Username for the new user")
	addUser.Flags().StringVarP(&passwordFlag, "password", "p", "", "Password for the new user")
	addUser.Flags().StringVarP(&emailFlag, "email", "e", "", "Email for the new user")
}
