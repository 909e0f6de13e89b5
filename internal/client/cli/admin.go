package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// listUsers prints all registered users. Works only for the admin session.
func (a *App) listUsers(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		log.Printf("Listing users unsuccessful: %s", err.Error())
		return err
	}

	for _, u := range users {
		marker := ""
		if u.IsAdmin {
			marker = " (admin)"
		}
		fmt.Printf("%s  %s%s\n", u.ID, u.Username, marker)
	}
	return nil
}

// deleteUser prompts for a username and deletes it. Works only for the admin
// session.
func (a *App) deleteUser(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.DeleteUser(ctx, userName); err != nil {
		log.Printf("Deletion unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("User deleted")
	return nil
}
