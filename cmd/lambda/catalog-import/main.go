// Catalog Import Lambda entry point
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"scheme-eligibility-engine/internal/handlers"
	"scheme-eligibility-engine/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger("info")
	defer utils.Sync()

	// Create handler
	handler, err := handlers.NewCatalogImportHandler()
	if err != nil {
		panic("Failed to create handler: " + err.Error())
	}

	// Start Lambda
	lambda.Start(handler.Handle)
}
