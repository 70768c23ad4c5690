package businessflow

import (
	"context"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

const logExportFilenameLayout = "sms_logs_20060102_150405.xlsx"

var logExportHeader = []string{"id", "to_phone", "service_sid", "message_type", "status", "failure_reason", "snippet", "timestamp", "updated_at"}

// ExportLogsExcel writes the notification log to a workbook with one sheet per message type
func (nf *NotificationFlowImpl) ExportLogsExcel(ctx context.Context) (string, []byte, error) {
	entries, err := nf.tracker.List(ctx)
	if err != nil {
		return "", nil, NewBusinessError("LIST_LOGS_FAILED", "Failed to list notification logs", err)
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	byType := make(map[models.MessageType][]*models.NotificationLogEntry)
	order := make([]models.MessageType, 0)
	for _, e := range entries {
		if _, ok := byType[e.MessageType]; !ok {
			order = append(order, e.MessageType)
		}
		byType[e.MessageType] = append(byType[e.MessageType], e)
	}
	if len(order) == 0 {
		// Keep an empty sheet with headers so the file is still usable
		order = append(order, "")
	}

	for i, messageType := range order {
		name := sheetName(string(messageType))
		if i == 0 {
			xl.SetSheetName(xl.GetSheetName(0), name)
		} else if _, err := xl.NewSheet(name); err != nil {
			return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to create worksheet", err)
		}

		header := logExportHeader
		_ = xl.SetSheetRow(name, "A1", &header)

		for ri, e := range byType[messageType] {
			reason := ""
			if e.FailureReason != nil {
				reason = *e.FailureReason
			}
			updatedAt := ""
			if e.UpdatedAt != nil {
				updatedAt = e.UpdatedAt.UTC().Format(time.RFC3339)
			}
			record := []string{
				e.ID,
				e.ToPhone,
				e.ProviderMessageID,
				string(e.MessageType),
				e.Status,
				reason,
				e.Snippet,
				e.CreatedAt.UTC().Format(time.RFC3339),
				updatedAt,
			}
			cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
			_ = xl.SetSheetRow(name, cellRef, &record)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return utils.UTCNow().Format(logExportFilenameLayout), buf.Bytes(), nil
}

// sheetName keeps names within Excel's 31 character limit and character set
func sheetName(name string) string {
	replacer := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")
	safe := strings.TrimSpace(replacer.Replace(name))
	if safe == "" {
		return "logs"
	}
	if len(safe) > 31 {
		return safe[:31]
	}
	return safe
}
