// Package handlers implements the HTTP API of the network store.
//
// Handlers parse the path and the body, call the services layer and convert the
// result with the api/v1 types. They hold no logic of their own.
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Path and body parsing                                        │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  NetworkService │ MigrationService                              │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Routes
//
// RegisterHandlers mounts the routes on the /api/v1 group of the server:
//
//	POST   /networks
//	DELETE /networks/{networkId}
//	GET    /networks/{networkId}/variants
//	POST   /networks/{networkId}/variants
//	DELETE /networks/{networkId}/variants/{variantNum}
//	GET    /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId}?type=
//	PUT    /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId}
//	DELETE /networks/{networkId}/variants/{variantNum}/equipment/{equipmentId}
//	GET    .../equipment/{equipmentId}/limits
//	PUT    .../equipment/{equipmentId}/limits
//	GET    .../equipment/{equipmentId}/tap-changers/{type}/steps
//	PUT    .../equipment/{equipmentId}/tap-changers/{type}/steps
//	GET    /admin/migrations
//	POST   /admin/migrations/{unit}/networks/{networkId}
//	POST   /admin/migrations/{unit}/networks/{networkId}/variants/{variantNum}
//
// The admin routes go through the middlewares given to RegisterHandlers, JWTAuth when
// authentication is enabled.
//
// # Error Handling
//
// Every failure is written by renderError as a v1.Error envelope:
//
//	{"status": 404, "error": "Not Found", "message": "variant \"...\" not found", "path": "/api/v1/..."}
//
//	┌───────────────────────────────┬────────┐
//	│ Error                         │ Status │
//	├───────────────────────────────┼────────┤
//	│ InvalidArgumentError          │ 400    │
//	│ ResourceNotFoundError         │ 404    │
//	│ InvalidOperationError         │ 409    │
//	│ ResourceExistsError           │ 409    │
//	│ migration.MigrationError      │ 500    │
//	│ anything else                 │ 500    │
//	└───────────────────────────────┴────────┘
//
// A MigrationError wrapping a ResourceNotFoundError, like a migration of an unknown
// variant, is a 404.
package handlers
