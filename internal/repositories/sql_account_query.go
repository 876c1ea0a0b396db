package repositories

var (
	queryAccountCreate = `
		INSERT INTO accounts (document_number, available_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING id;`

	queryAccountGetByID = `
		SELECT id, document_number, available_balance, created_at, updated_at
		FROM accounts
		WHERE id = $1;`

	queryAccountGetByDocumentNumber = `
		SELECT id, document_number, available_balance, created_at, updated_at
		FROM accounts
		WHERE document_number = $1;`

	queryAccountLockByID = `
		SELECT id FROM accounts WHERE id = $1 FOR UPDATE;`
)
