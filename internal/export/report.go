package export

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/usahaku/scoring-service/internal/models"
)

// TransactionReport renders a user's transactions as an indented XML
// document suitable for download
func TransactionReport(username string, txs []models.Transaction) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("transaction_report")
	root.CreateAttr("username", username)
	root.CreateAttr("generated_at", time.Now().UTC().Format(time.RFC3339))
	root.CreateAttr("count", fmt.Sprintf("%d", len(txs)))

	var income, expense float64
	for _, tx := range txs {
		row := root.CreateElement("transaction")
		row.CreateAttr("id", fmt.Sprintf("%d", tx.ID))
		row.CreateElement("date").SetText(tx.Date.Format("2006-01-02"))
		row.CreateElement("type").SetText(tx.Type)
		row.CreateElement("description").SetText(tx.Description)
		row.CreateElement("amount").SetText(fmt.Sprintf("%.2f", tx.Amount))

		if tx.Type == models.TypeIncome {
			income += tx.Amount
		} else {
			expense += tx.Amount
		}
	}

	summary := root.CreateElement("summary")
	summary.CreateElement("total_income").SetText(fmt.Sprintf("%.2f", income))
	summary.CreateElement("total_expense").SetText(fmt.Sprintf("%.2f", expense))
	summary.CreateElement("net").SetText(fmt.Sprintf("%.2f", income-expense))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}
