package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// historyEventRow mirrors the persisted JSON shape of one history event.
// Snapshots are not part of the report and are left undecoded.
type historyEventRow struct {
	Type  string    `json:"type"`
	At    time.Time `json:"at"`
	Value string    `json:"value"`
}

// ExportHistoryQueryHandler renders the order audit log as a plain-text
// report, one section per order with its history events indented below.
type ExportHistoryQueryHandler struct {
	db *gorm.DB
}

// NewExportHistoryQueryHandler creates a handler for history exports.
func NewExportHistoryQueryHandler(db *gorm.DB) ExportHistoryQueryHandler {
	return ExportHistoryQueryHandler{db: db}
}

// Handle executes the export. Orders without history events still appear in
// the report with an empty section.
func (h ExportHistoryQueryHandler) Handle(
	ctx context.Context,
	query ExportHistoryQuery,
) (ExportHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ExportHistoryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_number,
			status,
			history
		FROM orders
		ORDER BY date, order_number
	`).Rows()
	if err != nil {
		return ExportHistoryQueryResponse{}, err
	}
	defer rows.Close()

	var b strings.Builder
	b.WriteString("HISTORIAL DE PEDIDOS\n")
	b.WriteString("Generado: " + time.Now().Format("2006-01-02 15:04:05") + "\n\n")

	for rows.Next() {
		var orderNumber, status string
		var history []byte

		if err = rows.Scan(&orderNumber, &status, &history); err != nil {
			return ExportHistoryQueryResponse{}, err
		}

		var events []historyEventRow
		if len(history) > 0 {
			if err = json.Unmarshal(history, &events); err != nil {
				return ExportHistoryQueryResponse{}, err
			}
		}

		fmt.Fprintf(&b, "Pedido: %s  Estado: %s\n", orderNumber, status)
		for _, e := range events {
			fmt.Fprintf(&b, "  - [%s] %s => %s\n", e.Type, e.At.Format("2006-01-02 15:04:05"), e.Value)
		}
		b.WriteString("\n")
	}

	if err = rows.Err(); err != nil {
		return ExportHistoryQueryResponse{}, err
	}

	return ExportHistoryQueryResponse{
		FileName: "historial_pedidos.txt",
		Content:  b.String(),
	}, nil
}
