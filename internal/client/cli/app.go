// Package cli implements the interactive command-line client for the
// authentication server.
package cli

import (
	"bufio"
	"os"

	"github.com/dmitrijs2005/authd/internal/client/api"
	"github.com/dmitrijs2005/authd/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		client: api.NewClient(c.ServerURL),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.client.IsAuthenticated()
}
