package main

import (
	"log"

	"bitbucket.org/Amartha/go-fp-ledger/internal/common/codegen/errorgen"
)

var (
	fileLocation = "./storages/errors-map.csv"
	templateFile = "./internal/common/codegen/errorgen/error_map.tmpl"
	templateName = "error_map.tmpl"
	outputFile   = "./internal/models/error_map.go"
)

func main() {
	if err := errorgen.GenerateErrorMapFromCSV(templateFile, templateName, fileLocation, outputFile); err != nil {
		log.Fatal(err)
	}
	log.Printf("writing file: %s", outputFile)
}
