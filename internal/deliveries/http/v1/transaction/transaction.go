package transaction

import (
	"net/http"

	"github.com/labstack/echo/v4"

	commonhttp "bitbucket.org/Amartha/go-fp-ledger/internal/common/http"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/http/middleware"
	"bitbucket.org/Amartha/go-fp-ledger/internal/common/validation"
	"bitbucket.org/Amartha/go-fp-ledger/internal/models"
	"bitbucket.org/Amartha/go-fp-ledger/internal/services"
)

type transactionHandler struct {
	transactionService services.TransactionService
}

// New transaction handler will initialize the transactions/ resources endpoint
func New(app *echo.Group, trxSrv services.TransactionService, m middleware.AppMiddleware) {
	th := transactionHandler{
		transactionService: trxSrv,
	}
	transactions := app.Group("/transactions")
	transactions.POST("", th.createTransaction(), m.CheckIdempotentRequest())
}

// @Summary 	Create Transaction
// @Description Record a transaction against an account. Payments are discharged against the oldest unsettled debits.
// @Tags 		Transactions
// @Accept		json
// @Produce		json
// @Param 	payload body models.CreateTransactionIn true "A JSON object containing create transaction payload"
// @Param	Idempotency-Key header string false "Makes the request safe to retry"
// @Success 201 {object} models.TransactionOut "Transaction created"
// @Failure 400 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse} "Validation error or invalid operation type"
// @Failure 404 {object} http.RestErrorResponseModel "Account not found"
// @Failure 409 {object} http.RestErrorResponseModel "A request with the same idempotency key is in progress"
// @Failure 422 {object} http.RestErrorResponseModel "Idempotency key reused with a different payload"
// @Failure 500 {object} http.RestErrorResponseModel "Internal server error"
// @Router /v1/transactions [post]
func (th transactionHandler) createTransaction() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(models.CreateTransactionIn)

		if err := c.Bind(req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, validation.DecodeError(err))
		}

		if err := validation.ValidateStruct(req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, err)
		}

		trx, err := th.transactionService.Create(c.Request().Context(), *req)
		if err != nil {
			return commonhttp.RestServiceErrorResponse(c, err)
		}

		return commonhttp.RestSuccessResponse(c, http.StatusCreated, trx.ToModelResponse())
	}
}
