package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/deploy-status/internal/http/deploy"
)

// Register wires all huma operations into the provided API.
func Register(api huma.API) {
	deploy.Register(api)
}
