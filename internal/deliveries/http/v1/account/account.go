package account

import (
	"net/http"

	"github.com/labstack/echo/v4"

	commonhttp "bitbucket.org/Amartha/go-fp-ledger/internal/common/http"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/validation"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/services"
)

type accountHandler struct {
	accountService services.AccountService
}

// New account handler will initialize the account/ resources endpoint
func New(app *echo.Group, accountSrv services.AccountService) {
	ah := accountHandler{
		accountService: accountSrv,
	}
	account := app.Group("/accounts")
	account.POST("", ah.createAccount())
	account.GET("/:accountId", ah.getAccount())
}

// @Summary 	Create Account
// @Description Register a new account for a document number
// @Tags 		Accounts
// @Accept		json
// @Produce		json
// @Param 	payload body models.CreateAccountIn true "A JSON object containing create account payload"
// @Success 201 {object} models.AccountOut "Account created"
// @Failure 400 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse} "Validation error"
// @Failure 409 {object} http.RestErrorResponseModel "An account already exists for the document number"
// @Failure 500 {object} http.RestErrorResponseModel "Internal server error"
// @Router /v1/accounts [post]
func (ah accountHandler) createAccount() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreateAccountIn)

		if err := c.Bind(req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, validation.DecodeError(err))
		}

		if err := validation.ValidateStruct(req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, err)
		}

		res, err := ah.accountService.Create(c.Request().Context(), *req)
		if err != nil {
			return commonhttp.RestServiceErrorResponse(c, err)
		}

		return commonhttp.RestSuccessResponse(c, http.StatusCreated, res)
	}
}

// @Summary 	Get account
// @Description Get one account by its id
// @Tags 		Accounts
// @Accept		json
// @Produce		json
// @Param 	accountId path int true "account identifier"
// @Success 200 {object} models.AccountOut "Account found"
// @Failure 400 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse} "Validation error"
// @Failure 404 {object} http.RestErrorResponseModel "Account not found"
// @Failure 500 {object} http.RestErrorResponseModel "Internal server error"
// @Router /v1/accounts/{accountId} [get]
func (ah accountHandler) getAccount() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.DoGetAccountRequest)

		if err := (&echo.DefaultBinder{}).BindPathParams(c, req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, validation.FieldTypeError("accountId"))
		}

		if err := validation.ValidateStruct(req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, err)
		}

		res, err := ah.accountService.GetByID(c.Request().Context(), req.AccountID)
		if err != nil {
			return commonhttp.RestServiceErrorResponse(c, err)
		}

		return commonhttp.RestSuccessResponse(c, http.StatusOK, res)
	}
}
