// Package docs provides generated OpenAPI documentation.
//
// Hungie API
//
//	@title			Hungie API
//	@version		1.0
//	@description	Recipe extraction backend for searching recipes pulled from cookbook PDFs.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/yeschef/hungie
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/hungie/serve.go -o . --parseDependency --parseInternal
