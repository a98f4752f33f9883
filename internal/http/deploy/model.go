package deploy

// SuccessMessage is the fixed body the pipeline checks after a rollout.
const SuccessMessage = "CI/CD Deployment Success!"

// Data models the deployment status payload.
type Data struct {
	Message string `json:"message" doc:"Deployment status message" example:"CI/CD Deployment Success!"`
}

// StatusOutput is the response wrapper for the deployment status endpoint.
type StatusOutput struct {
	Body Data
}
