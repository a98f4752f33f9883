package deploy

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/deploy-status/internal/platform/logging"
)

// Register wires the deployment status route into the provided API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-deployment-status",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Report deployment status",
		Description: "Returns a fixed message confirming the service was deployed and is answering requests.",
		Tags:        []string{"Deployment"},
	}, statusHandler)
}

func statusHandler(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	applog.LogInfo(ctx, "deployment status", zap.String("path", "/"))
	return &StatusOutput{Body: Data{Message: SuccessMessage}}, nil
}
