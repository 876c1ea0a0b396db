package errorgen

import (
	"path/filepath"
	"strings"
	"testing"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `key,code,message
account_not_found,ACCOUNT_NOT_FOUND,account not found
amount_decimalGreaterThan,VALIDATION_ERROR,amount must be greater than 0
accountId_required,VALIDATION_ERROR,account id is required
`

func TestReadCSV(t *testing.T) {
	data, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []ErrorKey{
		{Key: "ErrKeyAccountNotFound", Description: "account_not_found"},
		{Key: "ErrKeyAmountDecimalGreaterThan", Description: "amount_decimalGreaterThan"},
		{Key: "ErrKeyAccountIdRequired", Description: "accountId_required"},
	}, data.ErrorKeys)
	assert.Len(t, data.ErrorCodes, 2, "codes are deduplicated")
	assert.Len(t, data.ErrorMessages, 3)
	assert.Equal(t, ErrorMap{
		Key:     "ErrKeyAccountNotFound",
		Code:    "errCodeAccountNotFound",
		Message: "errAccountNotFound",
	}, data.ErrorMaps[0])
}

func TestReadCSV_ShortRow(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("key,code,message\nonly,two\n"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	data, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	tmpl, err := template.New("").Funcs(sprig.TxtFuncMap()).ParseFiles(filepath.Join(".", "error_map.tmpl"))
	require.NoError(t, err)

	out, err := Render(tmpl, "error_map.tmpl", data)
	require.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "// Code generated by errorgen. DO NOT EDIT.")
	assert.Regexp(t, `ErrKeyAccountNotFound\s+= "account_not_found"`, src)
	assert.Regexp(t, `errCodeValidationError\s+= "VALIDATION_ERROR"`, src)
	assert.Regexp(t, `errAccountNotFound\s+= errors.New\("account not found"\)`, src)
	assert.Regexp(t, `ErrKeyAccountIdRequired:\s+\{Code: errCodeValidationError, ErrorMessage: errAccountIdIsRequired\},`, src)
}
