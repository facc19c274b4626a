package storage

const (
	insertProperty = `INSERT INTO properties (id, name, type, image_url, created_at) VALUES (?, ?, ?, ?, ?)`
	updateProperty = `UPDATE properties SET name = ?, type = ?, image_url = ? WHERE id = ?`
	selectProperty = `SELECT id, name, type, image_url, created_at FROM properties WHERE id = ?`
	listProperties = `SELECT id, name, type, image_url, created_at FROM properties ORDER BY rowid`
	deleteProperty = `DELETE FROM properties WHERE id = ?`

	transactionColumns = `id, property_id, type, category, amount, description, month, created_at`

	insertTransaction = `INSERT INTO transactions (` + transactionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	updateTransaction = `UPDATE transactions
SET property_id = ?, type = ?, category = ?, amount = ?, description = ?, month = ?
WHERE id = ?`
	selectTransaction            = `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ?`
	listTransactions             = `SELECT ` + transactionColumns + ` FROM transactions ORDER BY seq`
	deleteTransaction            = `DELETE FROM transactions WHERE id = ?`
	deleteTransactionsByProperty = `DELETE FROM transactions WHERE property_id = ?`
)
