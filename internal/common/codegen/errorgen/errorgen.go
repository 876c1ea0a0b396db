// Package errorgen renders internal/models/error_map.go from the error catalogue csv.
package errorgen

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/iancoleman/strcase"
)

type (
	ErrorGen struct {
		ErrorMaps     []ErrorMap
		ErrorKeys     []ErrorKey
		ErrorMessages []ErrorMessage
		ErrorCodes    []ErrorCode
	}

	ErrorMap struct {
		Key     string
		Code    string
		Message string
	}

	ErrorKey struct {
		Key         string
		Description string
	}

	ErrorMessage struct {
		Key         string
		Description string
	}

	ErrorCode struct {
		Key         string
		Description string
	}
)

func GenerateErrorMapFromCSV(templatePath, templateName, csvPath, outputPath string) error {
	csvFile, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer csvFile.Close()

	data, err := ReadCSV(csvFile)
	if err != nil {
		return err
	}

	tmpl, err := template.New("").Funcs(sprig.TxtFuncMap()).ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("unable to parse template: %w", err)
	}

	out, err := Render(tmpl, templateName, data)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(outputPath, out, 0o644)
}

// ReadCSV expects a header row followed by key,code,message rows.
func ReadCSV(r io.Reader) (ErrorGen, error) {
	lines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return ErrorGen{}, err
	}

	var (
		isExistErrorMessage = make(map[string]bool)
		isExistErrorCode    = make(map[string]bool)
		data                ErrorGen
	)
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) < 3 {
			return ErrorGen{}, fmt.Errorf("line %d: expected 3 columns, got %d", i+1, len(lines[i]))
		}
		key, code, message := lines[i][0], lines[i][1], lines[i][2]

		errKey := "ErrKey" + identifier(key)
		data.ErrorKeys = append(data.ErrorKeys, ErrorKey{Key: errKey, Description: key})

		errCodeKey := "errCode" + identifier(code)
		if !isExistErrorCode[errCodeKey] {
			data.ErrorCodes = append(data.ErrorCodes, ErrorCode{Key: errCodeKey, Description: code})
			isExistErrorCode[errCodeKey] = true
		}

		errMessageKey := "err" + identifier(message)
		if !isExistErrorMessage[errMessageKey] {
			data.ErrorMessages = append(data.ErrorMessages, ErrorMessage{Key: errMessageKey, Description: message})
			isExistErrorMessage[errMessageKey] = true
		}

		data.ErrorMaps = append(data.ErrorMaps, ErrorMap{
			Key:     errKey,
			Code:    errCodeKey,
			Message: errMessageKey,
		})
	}

	return data, nil
}

func Render(tmpl *template.Template, templateName string, data ErrorGen) ([]byte, error) {
	var processed bytes.Buffer
	if err := tmpl.ExecuteTemplate(&processed, templateName, data); err != nil {
		return nil, fmt.Errorf("unable to parse data into template: %w", err)
	}

	formatted, err := format.Source(processed.Bytes())
	if err != nil {
		return nil, fmt.Errorf("could not format processed template: %w", err)
	}

	return formatted, nil
}

func identifier(s string) string {
	return strings.Join(strings.Fields(strcase.ToCamel(s)), "")
}
