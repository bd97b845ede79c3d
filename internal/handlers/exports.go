package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/smartsave-campus/backend/internal/models"
)

// ExportCSV выгружает все транзакции пользователя в CSV-файл.
func (h *TransactionHandler) ExportCSV(c echo.Context) error {
	userID := c.Param("userId")

	transactions, err := h.Transactions.ListTransactions(c.Request().Context(), userID, 0)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeTransactionsCSV(writer, transactions); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "transactions-" + userID + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeTransactionsCSV(writer *csv.Writer, transactions []models.Transaction) error {
	header := []string{
		"transaction_id",
		"user_id",
		"created_at",
		"category",
		"merchant",
		"amount",
		"source",
		"risk_score",
		"fraud_flag",
		"fraud_reasons",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, tx := range transactions {
		record := []string{
			tx.ID,
			tx.UserID,
			formatTime(tx.CreatedAt),
			tx.Category,
			tx.Merchant,
			tx.Amount.StringFixed(2),
			stringValue(tx.Source),
			intValue(tx.RiskScore),
			boolValue(tx.FraudFlag),
			strings.Join(tx.FraudReasons, "; "),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func intValue(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func boolValue(value *bool) string {
	if value == nil {
		return ""
	}
	return strconv.FormatBool(*value)
}
