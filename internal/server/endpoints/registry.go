package endpoints

import (
	"github.com/yeschef/hungie/internal/api"
)

// All returns all endpoint instances.
func All() []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},

		// Recipe endpoints
		&SearchEndpoint{},
		&GetRecipeEndpoint{},

		// Book endpoints
		&ListBooksEndpoint{},
		&GetBookEndpoint{},
		&BookRecipesEndpoint{},
		&PurgeBookRecipesEndpoint{},
		&BookTOCMapEndpoint{},

		// Extraction endpoints
		&ExtractEndpoint{},
		&StatsEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{},
		&SwaggerUIEndpoint{},
	}
}
